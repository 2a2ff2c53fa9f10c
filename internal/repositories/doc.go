// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [UserRepository] : Guest persistence with email-based lookups
//   - [PartyRepository] : Parties with their ordered member and playlist lists
//   - [LocationRepository] : Venues with numeric filter criteria
//   - [SongRepository] : Songs; deleting one scrubs it from every playlist
//   - [TaskRepository] : Tasks with party, assignee and completion criteria
//   - [FoodRepository] : Catering options
//   - [LinkCache] : Reuses previously resolved media links by normalized title/artist
//
// Lookups of missing or soft-deleted rows return errors wrapping the entity's shared.Err*NotFound sentinel.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
