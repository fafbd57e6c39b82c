package registry

type errMetricNotFound string

func (e errMetricNotFound) Error() string {
	return "metric definition not found: " + string(e)
}

type errDuplicateMetricID string

func (e errDuplicateMetricID) Error() string {
	return "duplicate metric id in registry: " + string(e)
}

type errInvalidDefinition string

func (e errInvalidDefinition) Error() string {
	return "invalid metric definition: " + string(e)
}
