// Package models defines domain entities and persistence interfaces for the party planning service.
//
// Persistent entities embed [Record], which carries the ID, sequence number, timestamps and soft delete marker:
//   - [User] : Guests with a hashed credential secret
//   - [Party] : The event; owns its member and playlist id lists and its point total
//   - [Location] : Rentable venues matched against party constraints
//   - [Song] : Playlist entries with an optionally resolved media link
//   - [Task] : Point-scored chores owned by a party and assigned to a user
//   - [Food] : Catering options
//
// Cross-entity references are bare ids. Nothing here enforces that they resolve; callers look them up explicitly.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
