package lsp

import (
	"context"
	"encoding/json"
	"fmt"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/pkglens/pkglens/internal/annotate"
	"github.com/pkglens/pkglens/internal/manifest"
)

// handleInitialize handles the initialize request
func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse initialize params")
	}

	s.logger.Info("initialize", zap.Any("client", params.ClientInfo))

	// Extract workspace root from params
	if len(params.WorkspaceFolders) > 0 {
		// Use workspace folders if available (LSP 3.6+)
		s.workspaceRoot = uri.URI(params.WorkspaceFolders[0].URI).Filename()
	} else if params.RootURI != "" {
		// Fall back to rootUri (deprecated but still used)
		s.workspaceRoot = params.RootURI.Filename()
	} else if params.RootPath != "" {
		s.workspaceRoot = params.RootPath
	}
	if s.workspaceRoot != "" {
		s.logger.Info("workspace root set", zap.String("root", s.workspaceRoot))
	}

	result := protocol.InitializeResult{
		Capabilities: s.capabilities,
		ServerInfo: &protocol.ServerInfo{
			Name:    "pkglens",
			Version: "0.1.0",
		},
	}

	return reply(ctx, result, nil)
}

// handleInitialized handles the initialized notification
func (s *Server) handleInitialized(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.logger.Debug("client initialized")
	return reply(ctx, nil, nil)
}

// handleShutdown handles the shutdown request
func (s *Server) handleShutdown(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.logger.Debug("shutdown requested")
	return reply(ctx, nil, nil)
}

// handleExit handles the exit notification
func (s *Server) handleExit(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	// Reply first, then trigger shutdown
	if err := reply(ctx, nil, nil); err != nil {
		s.logger.Warn("error replying to exit", zap.Error(err))
	}
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// handleTextDocumentDidOpen handles document open notifications
func (s *Server) handleTextDocumentDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse didOpen params")
	}

	uri := string(params.TextDocument.URI)
	doc := s.docs.Set(uri, params.TextDocument.Text, int(params.TextDocument.Version))
	if doc.ParseErr != nil {
		s.logger.Debug("manifest parse failed", zap.String("uri", uri), zap.Error(doc.ParseErr))
	}

	return reply(ctx, nil, nil)
}

// handleTextDocumentDidChange handles document change notifications.
// Sync is full-document, so only the last content change matters.
func (s *Server) handleTextDocumentDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse didChange params")
	}

	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	uri := string(params.TextDocument.URI)
	content := params.ContentChanges[len(params.ContentChanges)-1].Text
	doc := s.docs.Set(uri, content, int(params.TextDocument.Version))
	if doc.ParseErr != nil {
		s.logger.Debug("manifest parse failed", zap.String("uri", uri), zap.Error(doc.ParseErr))
	}

	return reply(ctx, nil, nil)
}

// handleTextDocumentDidClose handles document close notifications
func (s *Server) handleTextDocumentDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse didClose params")
	}

	s.docs.Close(string(params.TextDocument.URI))
	return reply(ctx, nil, nil)
}

// handleTextDocumentHover handles hover requests
func (s *Server) handleTextDocumentHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse hover params")
	}

	doc, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok || doc.Manifest == nil {
		// Unknown document or malformed manifest: no annotation.
		return reply(ctx, nil, nil)
	}

	offset := doc.Lines.Offset(params.Position)
	desc, err := s.dispatcher.AnnotationAt(ctx, doc.Manifest, offset)
	if err != nil {
		s.logger.Warn("metadata lookup failed", zap.Error(err))
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError,
			fmt.Sprintf("Metadata service query failed: %v", err))
	}
	if desc == nil {
		return reply(ctx, nil, nil)
	}

	r := doc.Lines.Range(desc.Span)
	result := protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: desc.Markdown,
		},
		Range: &r,
	}

	return reply(ctx, result, nil)
}

// handleTextDocumentCodeLens handles code lens requests: one update lens
// per deps entry plus the query-registries lens on the section header.
func (s *Server) handleTextDocumentCodeLens(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.CodeLensParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse codeLens params")
	}

	doc, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok || doc.Manifest == nil {
		return reply(ctx, []protocol.CodeLens{}, nil)
	}

	annotations := s.dispatcher.AnnotationsForDocument(doc.Manifest)
	lenses := make([]protocol.CodeLens, 0, len(annotations)+1)

	// The deps header carries the registry bootstrap action.
	if span, ok := doc.Manifest.LocateSectionHeader(manifest.SectionDeps); ok {
		lenses = append(lenses, protocol.CodeLens{
			Range: doc.Lines.Range(span),
			Command: &protocol.Command{
				Title:   "Query registries",
				Command: string(annotate.ActionQueryRegistries),
			},
		})
	}

	for _, a := range annotations {
		args := make([]interface{}, 0, len(a.Arguments))
		for _, arg := range a.Arguments {
			args = append(args, arg)
		}
		lenses = append(lenses, protocol.CodeLens{
			Range: doc.Lines.Range(a.Span),
			Command: &protocol.Command{
				Title:     a.Title,
				Command:   string(a.Action),
				Arguments: args,
			},
		})
	}

	return reply(ctx, lenses, nil)
}

// handleWorkspaceExecuteCommand dispatches the update and query-registries
// commands exposed through code lenses.
func (s *Server) handleWorkspaceExecuteCommand(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.ExecuteCommandParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse executeCommand params")
	}

	switch annotate.Action(params.Command) {
	case annotate.ActionUpdateDependency:
		name, identifier, err := dependencyArgs(params.Arguments)
		if err != nil {
			return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, err.Error())
		}
		s.updateDependency(name, identifier)
		return reply(ctx, nil, nil)

	case annotate.ActionQueryRegistries:
		// Fire and forget: the bootstrap is monotonic and duplicate-safe,
		// so a second trigger while loading is a no-op.
		go func() {
			if err := s.registry.EnsureReady(context.Background()); err != nil {
				s.notify(protocol.MessageTypeError,
					fmt.Sprintf("Registry query failed: %v", err))
			}
		}()
		return reply(ctx, nil, nil)

	default:
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams,
			fmt.Sprintf("Unknown command: %s", params.Command))
	}
}

// updateDependency performs the fire-and-forget update action. The engine
// never mutates the manifest itself; it reports the request to the client.
func (s *Server) updateDependency(name, identifier string) {
	s.logger.Info("update dependency requested",
		zap.String("name", name),
		zap.String("identifier", identifier),
	)
	s.notify(protocol.MessageTypeInfo, fmt.Sprintf("Updating %s (%s)", name, identifier))
}

// notify sends a window/showMessage notification, ignoring delivery errors.
func (s *Server) notify(level protocol.MessageType, message string) {
	if s.client == nil {
		return
	}
	if err := s.client.ShowMessage(context.Background(), &protocol.ShowMessageParams{
		Type:    level,
		Message: message,
	}); err != nil {
		s.logger.Debug("showMessage failed", zap.Error(err))
	}
}

// dependencyArgs extracts the (name, identifier) pair from raw command
// arguments.
func dependencyArgs(args []interface{}) (string, string, error) {
	if len(args) != 2 {
		return "", "", fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	name, ok := args[0].(string)
	if !ok {
		return "", "", fmt.Errorf("dependency name must be a string")
	}
	identifier, ok := args[1].(string)
	if !ok {
		return "", "", fmt.Errorf("dependency identifier must be a string")
	}
	return name, identifier, nil
}
