package contacts

import "fmt"

// Open returns the store for driver ("sqlite" or "memory") and a close function
func Open(driver, path string) (Adder, func() error, error) {
	switch driver {
	case "memory":
		return NewMemoryStore(), func() error { return nil }, nil
	case "sqlite":
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
