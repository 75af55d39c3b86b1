package treesearch_test

import (
	"testing"

	treesearch "github.com/gitrdm/treesearch/pkg/treesearch"
	"github.com/stretchr/testify/assert"
)

func TestArgumentErrorMessageNamesParamAndValue(t *testing.T) {
	err := treesearch.NewArgumentError("beam_width", 0, "must be >= 1")
	assert.ErrorContains(t, err, "beam_width")
	assert.ErrorContains(t, err, "must be >= 1")
}
