package app

import (
	"fmt"
	"net/http"

	authCache "github.com/allisson/assettrack/internal/auth/cache"
	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	authHTTP "github.com/allisson/assettrack/internal/auth/http"
	authService "github.com/allisson/assettrack/internal/auth/service"
	authUseCase "github.com/allisson/assettrack/internal/auth/usecase"
)

// RoleTable returns the role table, loaded from ROLE_TABLE_FILE when configured.
func (c *Container) RoleTable() (authDomain.RoleTable, error) {
	var err error
	c.roleTableInit.Do(func() {
		c.roleTable, err = authService.LoadRoleTable(c.config.RoleTableFile)
		if err != nil {
			c.initErrors["roleTable"] = fmt.Errorf("failed to load role table: %w", err)
		}
	})
	if storedErr, exists := c.initErrors["roleTable"]; exists {
		return nil, storedErr
	}
	return c.roleTable, nil
}

// TokenCache returns the in-process identity cache.
func (c *Container) TokenCache() *authCache.TokenCache {
	c.tokenCacheInit.Do(func() {
		c.tokenCache = authCache.NewTokenCache(c.config.AuthCacheTTL, c.config.AuthCacheCleanupInterval)
	})
	return c.tokenCache
}

// IdentityUseCase returns the identity use case wrapped with business metrics.
func (c *Container) IdentityUseCase() (authUseCase.IdentityUseCase, error) {
	var err error
	c.identityUseCaseInit.Do(func() {
		c.identityUseCase, err = c.initIdentityUseCase()
		if err != nil {
			c.initErrors["identityUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityUseCase"]; exists {
		return nil, storedErr
	}
	return c.identityUseCase, nil
}

// SessionHandler returns the HTTP handler for session endpoints.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	var err error
	c.sessionHandlerInit.Do(func() {
		c.sessionHandler, err = c.initSessionHandler()
		if err != nil {
			c.initErrors["sessionHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionHandler"]; exists {
		return nil, storedErr
	}
	return c.sessionHandler, nil
}

// initIdentityUseCase assembles the authority client, cache and retry policy.
func (c *Container) initIdentityUseCase() (authUseCase.IdentityUseCase, error) {
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for identity use case: %w", err)
	}

	authority := authService.NewHTTPAuthorityClient(c.config.AuthBaseURL, c.config.AuthTimeout, &http.Client{})
	retryPolicy := authService.RetryPolicy{
		MaxAttempts: c.config.AuthMaxRetries,
		BaseDelay:   c.config.AuthRetryBaseDelay,
		Multiplier:  c.config.AuthRetryMultiplier,
	}

	useCase := authUseCase.NewIdentityUseCase(
		authority,
		authService.NewTokenService(),
		c.TokenCache(),
		retryPolicy,
		c.config.AuthCacheTTL,
		c.Logger(),
	)

	return authUseCase.NewIdentityUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initSessionHandler creates the session handler.
func (c *Container) initSessionHandler() (*authHTTP.SessionHandler, error) {
	identityUseCase, err := c.IdentityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity use case for session handler: %w", err)
	}

	roleTable, err := c.RoleTable()
	if err != nil {
		return nil, fmt.Errorf("failed to get role table for session handler: %w", err)
	}

	return authHTTP.NewSessionHandler(identityUseCase, roleTable, c.Logger()), nil
}
