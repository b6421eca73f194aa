package app

import (
	"fmt"

	assetHTTP "github.com/allisson/assettrack/internal/asset/http"
	assetRepository "github.com/allisson/assettrack/internal/asset/repository"
	assetUseCase "github.com/allisson/assettrack/internal/asset/usecase"
	"github.com/allisson/assettrack/internal/database"
)

// assetRepositories groups the repositories the device use case depends on.
type assetRepositories struct {
	devices            assetUseCase.DeviceRepository
	rooms              assetUseCase.RoomRepository
	responsiblePersons assetUseCase.ResponsiblePersonRepository
	locations          assetUseCase.LocationRepository
	locationHistory    assetUseCase.LocationHistoryRepository
	conditionHistory   assetUseCase.ConditionHistoryRepository
}

// DeviceUseCase returns the device use case wrapped with business metrics.
func (c *Container) DeviceUseCase() (assetUseCase.DeviceUseCase, error) {
	var err error
	c.deviceUseCaseInit.Do(func() {
		c.deviceUseCase, err = c.initDeviceUseCase()
		if err != nil {
			c.initErrors["deviceUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["deviceUseCase"]; exists {
		return nil, storedErr
	}
	return c.deviceUseCase, nil
}

// DeviceHandler returns the HTTP handler for device operations.
func (c *Container) DeviceHandler() (*assetHTTP.DeviceHandler, error) {
	var err error
	c.deviceHandlerInit.Do(func() {
		c.deviceHandler, err = c.initDeviceHandler()
		if err != nil {
			c.initErrors["deviceHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["deviceHandler"]; exists {
		return nil, storedErr
	}
	return c.deviceHandler, nil
}

// initAssetRepositories selects the repository implementations for the configured driver.
func (c *Container) initAssetRepositories() (*assetRepositories, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for asset repositories: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return &assetRepositories{
			devices:            assetRepository.NewMySQLDeviceRepository(db),
			rooms:              assetRepository.NewMySQLRoomRepository(db),
			responsiblePersons: assetRepository.NewMySQLResponsiblePersonRepository(db),
			locations:          assetRepository.NewMySQLLocationRepository(db),
			locationHistory:    assetRepository.NewMySQLLocationHistoryRepository(db),
			conditionHistory:   assetRepository.NewMySQLConditionHistoryRepository(db),
		}, nil
	case database.DriverPostgres:
		return &assetRepositories{
			devices:            assetRepository.NewPostgreSQLDeviceRepository(db),
			rooms:              assetRepository.NewPostgreSQLRoomRepository(db),
			responsiblePersons: assetRepository.NewPostgreSQLResponsiblePersonRepository(db),
			locations:          assetRepository.NewPostgreSQLLocationRepository(db),
			locationHistory:    assetRepository.NewPostgreSQLLocationHistoryRepository(db),
			conditionHistory:   assetRepository.NewPostgreSQLConditionHistoryRepository(db),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDeviceUseCase creates the device use case with all its dependencies.
func (c *Container) initDeviceUseCase() (assetUseCase.DeviceUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for device use case: %w", err)
	}

	repos, err := c.initAssetRepositories()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for device use case: %w", err)
	}

	useCase := assetUseCase.NewDeviceUseCase(
		txManager,
		repos.devices,
		repos.rooms,
		repos.responsiblePersons,
		repos.locations,
		repos.locationHistory,
		repos.conditionHistory,
		c.Logger(),
	)

	return assetUseCase.NewDeviceUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initDeviceHandler creates the device handler.
func (c *Container) initDeviceHandler() (*assetHTTP.DeviceHandler, error) {
	deviceUseCase, err := c.DeviceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get device use case for device handler: %w", err)
	}

	return assetHTTP.NewDeviceHandler(deviceUseCase, c.Logger()), nil
}
