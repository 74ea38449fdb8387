package history

import "fmt"

// Redis key pattern helpers
//
// All Redis keys and Pub/Sub channels are namespaced by profile so separate
// journals can safely coexist on a single Redis server.
//
// Key pattern: destrier:{profile}:solve:{entry_id}
// Index pattern: destrier:{profile}:solves
// Channel pattern: destrier:{profile}:solve_events

// EntryKey returns the Redis key for a journal entry hash.
// Pattern: destrier:{profile}:solve:{entry_id}
func EntryKey(profile, entryID string) string {
	return fmt.Sprintf("destrier:%s:solve:%s", profile, entryID)
}

// EntryKeyPattern returns the SCAN glob matching every entry in a profile.
// Pattern: destrier:{profile}:solve:*
func EntryKeyPattern(profile string) string {
	return fmt.Sprintf("destrier:%s:solve:*", profile)
}

// IndexKey returns the Redis key for the profile's time-ordered index, a
// ZSET scoring entry IDs by solve time in Unix milliseconds.
// Pattern: destrier:{profile}:solves
func IndexKey(profile string) string {
	return fmt.Sprintf("destrier:%s:solves", profile)
}

// EventsChannel returns the Pub/Sub channel name for solve events.
// Pattern: destrier:{profile}:solve_events
func EventsChannel(profile string) string {
	return fmt.Sprintf("destrier:%s:solve_events", profile)
}
