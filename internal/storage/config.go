package storage

import "fmt"

// Kind selects the backend implementation. Resolved once at startup; nothing
// else inspects it at runtime.
type Kind string

const (
	KindKV       Kind = "kv"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

// Collection names, shared by both backends so the persisted layout is
// identical: the KV backend keys arrays as "{name}_{collection}", the SQL
// backend creates one table per collection.
const (
	CollectionBoards         = "boards"
	CollectionArchivedBoards = "archivedBoards"
	CollectionLists          = "lists"
	CollectionCards          = "cards"
	CollectionUsers          = "users"
	CollectionComments       = "comments"
	CollectionAttachments    = "attachments"
	CollectionMessages       = "messages"
	CollectionActivities     = "activities"
	CollectionNotifications  = "notifications"
	CollectionSettings       = "settings"
)

// Collections lists every logical collection, in the order Clear erases them.
var Collections = []string{
	CollectionBoards,
	CollectionArchivedBoards,
	CollectionLists,
	CollectionCards,
	CollectionUsers,
	CollectionComments,
	CollectionAttachments,
	CollectionMessages,
	CollectionActivities,
	CollectionNotifications,
	CollectionSettings,
}

// Config describes a backend. Name scopes the on-disk database, Version
// drives the SQL backend's schema upgrade pass, Dir is where file-backed
// stores live, DSN is only consulted for the postgres kind.
type Config struct {
	Name    string `yaml:"name"`
	Version int    `yaml:"version"`
	Kind    Kind   `yaml:"storage"`
	Dir     string `yaml:"dir"`
	DSN     string `yaml:"dsn"`
}

// Validate normalizes defaults and rejects configurations no backend can
// serve. It mutates the receiver.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config: name is required")
	}
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Version < 1 {
		return fmt.Errorf("config: version %d out of range", c.Version)
	}
	switch c.Kind {
	case KindKV, KindSQLite:
	case KindPostgres:
		if c.DSN == "" {
			return fmt.Errorf("config: postgres storage requires a dsn")
		}
	case "":
		c.Kind = KindKV
	default:
		return fmt.Errorf("config: unknown storage kind %q", c.Kind)
	}
	return nil
}
