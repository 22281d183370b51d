package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/javascriptjoey/cloudlint/pkg/convert"
	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var checksLog = logger.New("engine:checks")

// syntaxToolID identifies the built-in YAML syntax check in messages.
const syntaxToolID = "syntax"

// schemaToolID identifies the built-in JSON Schema check in messages.
const schemaToolID = "schema"

// checkSyntax parses the document and reports a parse failure as a single
// error message. The converter's error text carries the position hint.
func checkSyntax(content string) []Message {
	if _, err := convert.YAMLToJSON(content); err != nil {
		var parseErr *convert.ParseError
		if errors.As(err, &parseErr) {
			return []Message{{
				Severity: SeverityError,
				Text:     firstLine(parseErr.Err.Error()),
				Tool:     syntaxToolID,
			}}
		}
		return []Message{{
			Severity: SeverityError,
			Text:     err.Error(),
			Tool:     syntaxToolID,
		}}
	}
	return nil
}

// checkSchema validates the document, converted to JSON, against the JSON
// Schema at schemaPath. Schema compilation failures are reported as messages
// rather than faults so that one bad ruleset cannot crash a batch.
func checkSchema(content, schemaPath string) []Message {
	jsonText, err := convert.YAMLToJSON(content)
	if err != nil {
		// The syntax check has already reported this.
		return nil
	}

	compiler := jsonschema.NewCompiler()
	sch, err := compiler.Compile(schemaPath)
	if err != nil {
		checksLog.Printf("Schema compile failed: %s: %v", schemaPath, err)
		return []Message{{
			Severity: SeverityError,
			Text:     fmt.Sprintf("cannot load schema %s: %v", schemaPath, err),
			Tool:     schemaToolID,
		}}
	}

	instance, err := jsonschema.UnmarshalJSON(strings.NewReader(jsonText))
	if err != nil {
		return []Message{{
			Severity: SeverityError,
			Text:     fmt.Sprintf("cannot decode document for schema check: %v", err),
			Tool:     schemaToolID,
		}}
	}

	err = sch.Validate(instance)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []Message{{
			Severity: SeverityError,
			Text:     err.Error(),
			Tool:     schemaToolID,
		}}
	}

	var messages []Message
	for _, cause := range leafCauses(validationErr) {
		messages = append(messages, Message{
			Severity: SeverityError,
			Text:     firstLine(cause.Error()),
			Tool:     schemaToolID,
		})
	}
	return messages
}

// leafCauses flattens a validation error tree into its leaf causes.
func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
