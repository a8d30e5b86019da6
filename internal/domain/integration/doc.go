// Package integration contains the Integration bounded context.
// This context manages the connection to the remote content platform the
// product catalog is synchronized from.
//
// Key concepts:
//   - CatalogSource: Port interface for fetching catalog entries from a
//     remote content platform
//   - CatalogEntry: Value object carrying one normalized remote entry
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration
