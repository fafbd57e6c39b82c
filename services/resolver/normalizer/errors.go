package normalizer

type errUnknownStrategy string

func (e errUnknownStrategy) Error() string {
	return "unknown normalization strategy, value will pass through unchanged: " + string(e)
}

type errBadCaptureRegex string

func (e errBadCaptureRegex) Error() string {
	return "normalization capture regex does not compile: " + string(e)
}

type errBadEmbeddedPattern string

func (e errBadEmbeddedPattern) Error() string {
	return "embedded match pattern does not compile in strategy: " + string(e)
}
