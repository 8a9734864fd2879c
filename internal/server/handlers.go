package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/macro-cli/internal/edit"
	"github.com/mj1618/macro-cli/internal/logger"
	"github.com/mj1618/macro-cli/internal/model"
	"github.com/mj1618/macro-cli/internal/output"
	"github.com/mj1618/macro-cli/internal/render"
)

// editResult is returned by every edit tool.
type editResult struct {
	OK      bool                  `yaml:"ok"`
	Op      string                `yaml:"op"`
	Step    *int                  `yaml:"step,omitempty"`
	Index   *int                  `yaml:"index,omitempty"`
	Saved   string                `yaml:"saved,omitempty"`
	Unsaved bool                  `yaml:"unsaved,omitempty"`
	Error   string                `yaml:"error,omitempty"`
	Outline *output.OutlineResult `yaml:"outline,omitempty"`
}

// toText serializes v to YAML for an MCP response.
func toText(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}
	return string(b)
}

func stringArg(params map[string]any, key, defaultVal string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return defaultVal
}

func intArg(params map[string]any, key string, defaultVal int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return defaultVal
}

func boolArg(params map[string]any, key string, defaultVal bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return defaultVal
}

// persist saves the session when autosave is on and a file is bound.
func (s *Server) persist() (string, error) {
	if !s.autosave || s.sess.path == "" {
		return "", nil
	}
	return s.sess.save("")
}

// editHandler applies one edit op to the session document.
func (s *Server) editHandler(op string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := request.GetArguments()

		s.mu.Lock()
		defer s.mu.Unlock()

		res, err := s.sess.apply(op, params)
		result := editResult{Op: op, Step: res.Step, Index: res.Index}
		if err != nil {
			result.Error = err.Error()
			logger.LogDebug("edit rejected", map[string]interface{}{"op": op, "error": err.Error()})
			return mcp.NewToolResultError(toText(result)), nil
		}
		result.OK = true
		saved, err := s.persist()
		if err != nil {
			result.OK = false
			result.Error = err.Error()
			return mcp.NewToolResultError(toText(result)), nil
		}
		result.Saved = saved
		result.Unsaved = s.sess.dirty
		outline := s.sess.outline()
		result.Outline = &outline
		return mcp.NewToolResultText(toText(result)), nil
	}
}

func (s *Server) handleNew(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringArg(params, "path", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess.reset(path)
	if _, err := s.persist(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(s.sess.outline())), nil
}

func (s *Server) handleLoad(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringArg(params, "path", "")
	if path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sess.load(path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	logger.LogInfo("loaded macro", map[string]interface{}{"file": path, "steps": s.sess.doc.Len()})
	return mcp.NewToolResultText(toText(s.sess.outline())), nil
}

func (s *Server) handleSave(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringArg(params, "path", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.sess.save(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	logger.LogInfo("saved macro", map[string]interface{}{"file": saved})
	return mcp.NewToolResultText(toText(map[string]any{"ok": true, "saved": saved})), nil
}

func (s *Server) handleShow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	format := strings.ToLower(stringArg(params, "format", "json"))

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = model.Marshal(s.sess.doc)
	case "yaml":
		data, err = output.DocumentYAML(s.sess.doc)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid format %q: must be json or yaml", format)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleOutline(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	match := stringArg(params, "match", "")
	var kinds []model.OutlineKind
	if name := stringArg(params, "kind", ""); name != "" {
		k, err := model.ParseOutlineKind(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		kinds = append(kinds, k)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.sess.outline()
	result.Entries = model.FilterOutline(result.Entries, kinds, match)
	return mcp.NewToolResultText(toText(result)), nil
}

func (s *Server) handleRender(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	if _, ok := params["step"]; !ok {
		return mcp.NewToolResultError("step parameter is required"), nil
	}
	stepIdx := intArg(params, "step", 0)
	base := stringArg(params, "base", "")
	width := intArg(params, "width", s.width)
	height := intArg(params, "height", s.height)
	format := strings.ToLower(stringArg(params, "format", "png"))

	s.mu.Lock()
	if stepIdx < 0 {
		stepIdx += s.sess.doc.Len()
	}
	step, err := s.sess.doc.Step(stepIdx)
	s.mu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	elements, err := step.Elements()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("step %d: %s", stepIdx, err)), nil
	}

	var img image.Image
	if base != "" {
		if img, err = render.LoadImage(base); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	} else {
		img = render.Canvas(width, height)
	}

	var buf bytes.Buffer
	if err := render.Encode(&buf, render.Annotations(img, elements), format, 90); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mimeType := "image/png"
	if format == "jpg" || format == "jpeg" {
		mimeType = "image/jpeg"
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
				MIMEType: mimeType,
			},
		},
	}, nil
}

func (s *Server) handleRun(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.runner == nil {
		return mcp.NewToolResultError("run is not available: no launcher configured"), nil
	}

	s.mu.Lock()
	doc := s.sess.doc.Clone()
	s.mu.Unlock()

	res, err := s.runner.Run(ctx, doc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	logger.LogInfo("launched macro", map[string]interface{}{"executable": res.Executable, "file": res.MacroFile})
	return mcp.NewToolResultText(toText(res)), nil
}

func (s *Server) handleDo(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	stopOnError := boolArg(params, "stop-on-error", true)

	stepsRaw, ok := params["steps"]
	if !ok {
		return mcp.NewToolResultError("steps parameter is required"), nil
	}
	arr, ok := stepsRaw.([]interface{})
	if !ok {
		return mcp.NewToolResultError("steps must be an array"), nil
	}

	steps := make([]edit.BatchStep, 0, len(arr))
	for i, item := range arr {
		m, ok := item.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("step %d must be an object", i+1)), nil
		}
		step := make(edit.BatchStep, len(m))
		for name, raw := range m {
			switch p := raw.(type) {
			case nil:
				step[name] = edit.Params{}
			case map[string]interface{}:
				step[name] = edit.Params(p)
			default:
				return mcp.NewToolResultError(fmt.Sprintf("step %d: params for %q must be an object", i+1, name)), nil
			}
		}
		steps = append(steps, step)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := edit.ApplyBatch(s.sess.doc, steps, stopOnError)
	if result.Committed && result.Completed > 0 {
		s.sess.dirty = true
		if _, err := s.persist(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return mcp.NewToolResultText(toText(result)), nil
}
