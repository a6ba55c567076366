package core

type SqlQuery struct {
	Name  string `yaml:"name"`
	Query string `yaml:"query"`
}

// SqlQueries holds the summary queries executed against the findings database.
type SqlQueries struct {
	Queries []SqlQuery `yaml:"queries"`
}
