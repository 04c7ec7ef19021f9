package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/sweeplens/core"
	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	loader  contract.TableLoader
	mgr     contract.HistoryManager
}

// configFromRequest clones the base config and applies per-request overrides.
func (h *toolHandler) configFromRequest(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()

	path := request.GetString("csv_path", "")
	if path == "" {
		return nil, fmt.Errorf("csv_path is required")
	}
	cfg.CSVPath = path

	if cols := request.GetString("metric_cols", ""); cols != "" {
		cfg.MetricCols = contract.ParseColumnList(cols)
	}
	if status := request.GetString("completed_status", ""); status != "" {
		cfg.CompletedStatus = status
	}
	if params := request.GetString("params", ""); params != "" {
		cfg.ParamCols = contract.ParseColumnList(params)
	}
	if ratio := request.GetFloat("overfit_ratio", 0); ratio > 0 {
		cfg.OverfitRatio = ratio
	}
	if epochs := request.GetFloat("min_epochs", -1); epochs >= 0 {
		cfg.MinEpochs = epochs
	}
	if q := request.GetFloat("short_run_quantile", 0); q > 0 {
		if q >= 1 {
			return nil, fmt.Errorf("short_run_quantile must be in (0, 1)")
		}
		cfg.ShortRunQuantile = q
	}

	return cfg, nil
}

func (h *toolHandler) handleAnalyzeSweep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.GetSweepReport(ctx, cfg, h.loader)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report.Summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSweepIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.GetSweepReport(ctx, cfg, h.loader)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report.Issues, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSweepCorrelations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.GetSweepReport(ctx, cfg, h.loader)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report.Correlations, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleHistoryStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var store contract.HistoryStore
	if h.mgr != nil {
		store = h.mgr.GetHistoryStore()
	}
	if store == nil {
		return mcp.NewToolResultError("run history is not configured"), nil
	}

	status, err := store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get history status: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
