// Package builtin contains the tools shipped with the server.
package builtin

import (
	"context"
	"encoding/json"

	"textsaver/internal/saver"
	"textsaver/internal/tools"
)

type saveText struct {
	saver *saver.Saver
}

// NewSaveText wraps a Saver as the save_text tool.
func NewSaveText(s *saver.Saver) tools.ToolExecutor {
	return &saveText{saver: s}
}

func (t *saveText) Execute(ctx context.Context, call tools.ToolCall) (*tools.ToolResult, error) {
	res, serr := t.run(call.Arguments)
	payload, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}

	result := &tools.ToolResult{
		CallID:  call.ID,
		Content: string(payload),
	}
	if serr != nil {
		result.Error = serr
	}
	return result, nil
}

// run performs the JSON-level type checks the schema cannot enforce and
// delegates to the saver. Wrong argument types are structured failures,
// not protocol errors.
func (t *saveText) run(args map[string]any) (saver.Result, *saver.SaveError) {
	raw, ok := args["text"]
	if !ok {
		err := saver.NewError(saver.KindInvalidInput, "text is required")
		return saver.FailureResult(err), err
	}
	text, ok := raw.(string)
	if !ok {
		err := saver.NewError(saver.KindInvalidInput, "text must be a string")
		return saver.FailureResult(err), err
	}

	filename := ""
	if raw, present := args["filename"]; present && raw != nil {
		filename, ok = raw.(string)
		if !ok {
			err := saver.NewError(saver.KindInvalidInput, "filename must be a string")
			return saver.FailureResult(err), err
		}
	}

	res := t.saver.Save(text, filename)
	if !res.Success {
		return res, &saver.SaveError{Kind: saver.ErrorKind(res.Kind), Message: res.Error}
	}
	return res, nil
}

func (t *saveText) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name: "save_text",
		Description: "Save text content to a file inside the configured save directory. " +
			"If no filename is given, a timestamped one is generated.",
		Parameters: tools.ParameterSchema{
			Type: "object",
			Properties: map[string]tools.Property{
				"text":     {Type: "string", Description: "Text content to save"},
				"filename": {Type: "string", Description: "Optional filename; sanitized to a single safe path component"},
			},
			Required: []string{"text"},
		},
	}
}

func (t *saveText) Metadata() tools.ToolMetadata {
	return tools.ToolMetadata{
		Name: "save_text", Version: "1.0.0", Category: "file_operations", Dangerous: true,
	}
}
