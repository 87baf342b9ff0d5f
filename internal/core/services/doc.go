// Package services is the application core: one service per area of the
// gateway (auth, documents, search, admin) behind the driving ports.
//
// Input is checked here, so an empty query or a source without a name fails
// with domain.ErrInvalidInput before any request is sent.
package services
