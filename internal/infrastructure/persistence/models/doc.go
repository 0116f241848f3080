// Package models contains the GORM persistence models of the catalog tables.
// Domain entities carry no ORM tags; repositories convert between the two
// with each model's ToDomain and FromDomain.
//
// The schema itself is owned by the SQL migrations, never by AutoMigrate, so
// the tags here only describe column names and types for GORM.
package models
