package dialect

import "fmt"

// GetSource returns the Source dialect for a driver name.
func GetSource(driver string) (Source, error) {
	switch driver {
	case "mysql", "":
		return &MysqlDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported source driver %q", driver)
	}
}

// GetTarget returns the Target dialect for a driver name.
func GetTarget(driver string) (Target, error) {
	switch driver {
	case "postgres", "postgresql", "":
		return &PostgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported target driver %q", driver)
	}
}

// Ensure interface implementation
var _ Source = (*MysqlDialect)(nil)
var _ Target = (*PostgresDialect)(nil)
