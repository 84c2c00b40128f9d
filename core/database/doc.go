// Package database provides the MySQL connection used by the optional
// database sink, which loads exported records into a table for server-side
// consumption.
package database
