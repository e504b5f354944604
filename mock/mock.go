// Package mock is used to generate mock files for testing.
package mock

//go:generate mockgen -source ../internal/cookie/cookie_iface.go -destination mock_cookie/mock_cookie_iface.go
//go:generate mockgen -source ../internal/oidc/oidc_iface.go -destination mock_oidc/mock_oidc_iface.go
//go:generate mockgen -source ../internal/oidc/loader/loader_iface.go -destination mock_loader/mock_loader_iface.go
//go:generate mockgen -source ../sessionstorage/internal/postgres/postgres.go -destination mock_postgres/mock_postgres.go
//go:generate mockgen -source ../sessionstorage/sessionstorage_iface.go -destination mock_sessionstorage/mock_sessionstorage_iface.go -exclude_interfaces db
