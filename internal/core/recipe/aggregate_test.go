package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectToolsAndMethods(t *testing.T) {
	steps := []Step{
		{Tools: []string{"whisk", "bowl"}, Methods: []string{"whisk", "mix"}},
		{Tools: []string{"oven"}, Methods: []string{"bake"}},
		{Tools: []string{"bowl", "oven"}, Methods: []string{"bake", "mix"}},
		{},
	}

	tools, methods := CollectToolsAndMethods(steps)
	assert.Equal(t, []string{"bowl", "oven", "whisk"}, tools)
	assert.Equal(t, []string{"bake", "mix", "whisk"}, methods)

	// only the set of values matters
	reversed := []Step{steps[3], steps[2], steps[1], steps[0]}
	tools2, methods2 := CollectToolsAndMethods(reversed)
	assert.Equal(t, tools, tools2)
	assert.Equal(t, methods, methods2)
}

func TestCollectToolsAndMethodsEmpty(t *testing.T) {
	tools, methods := CollectToolsAndMethods(nil)
	assert.NotNil(t, tools)
	assert.NotNil(t, methods)
	assert.Empty(t, tools)
	assert.Empty(t, methods)
}
