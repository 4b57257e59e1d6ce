// Package model defines the records exchanged with the community API:
// admin statistics, announcements and user profiles.
package model
