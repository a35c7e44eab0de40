package apidoc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type captureLogger struct {
	lines []string
}

func (c *captureLogger) Debug(format string, a ...any)   { c.lines = append(c.lines, fmt.Sprintf(format, a...)) }
func (c *captureLogger) Info(format string, a ...any)    { c.lines = append(c.lines, fmt.Sprintf(format, a...)) }
func (c *captureLogger) Warning(format string, a ...any) { c.lines = append(c.lines, fmt.Sprintf(format, a...)) }
func (c *captureLogger) Error(format string, a ...any)   { c.lines = append(c.lines, fmt.Sprintf(format, a...)) }
func (c *captureLogger) Fatal(format string, a ...any)   { c.lines = append(c.lines, fmt.Sprintf(format, a...)) }

func TestAPIDocDefaults(t *testing.T) {
	engine := APIDoc()
	assert.NotNil(t, engine.Logger())
	v, err := engine.Compile(mustSchema(t, userSchemaJson))
	assert.NoError(t, err)
	assert.NotNil(t, v)
}

func TestEngineCompileErrorLogged(t *testing.T) {
	engine := APIDoc()
	logger := &captureLogger{}
	engine.SetLogger(logger)
	_, err := engine.Compile(mustSchema(t, `{"type": "integre"}`))
	assert.Error(t, err)
	assert.Len(t, logger.lines, 1)
	assert.Contains(t, logger.lines[0], "unknown type")
}

func TestEngineValidateString(t *testing.T) {
	engine := APIDoc()
	report := engine.ValidateString(`{"name": "Ada", "age": 30}`, mustSchema(t, userSchemaJson))
	assert.True(t, report.Valid)
}

func TestEngineSetMaxDepthGuard(t *testing.T) {
	engine := APIDoc()
	engine.SetMaxDepth(-1)
	assert.Equal(t, defaultMaxDepth, engine.maxDepth)
	engine.SetMaxDepth(4)
	assert.Equal(t, 4, engine.maxDepth)
}
