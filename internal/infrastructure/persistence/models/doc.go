// Package models contains the GORM persistence models that map to database tables.
// Domain entities stay free of GORM tags; each model converts to and from its
// entity with ToDomain and FromDomain.
//
// Indexes that GORM tags cannot express (partial unique indexes on active rows)
// live in the SQL migrations only.
package models
