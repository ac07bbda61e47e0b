package database

// GetSchemaTables lists every table in creation order. Truncation walks the
// list backwards so dependents go first.
func GetSchemaTables() []string {
	return []string{
		"users",
		"tags",
		"posts",
		"projects",
		"post_tags",
		"project_tags",
		"images",
	}
}

func isValidTable(name string) bool {
	for _, table := range GetSchemaTables() {
		if table == name {
			return true
		}
	}

	return false
}
