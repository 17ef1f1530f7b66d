package textmetrics

import (
	"github.com/datar-psa/textmetrics/api"
)

type LLMGenerator = api.LLMGenerator
type Labeler = api.Labeler
