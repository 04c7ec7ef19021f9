// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Sweeplens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, loader contract.TableLoader, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Sweeplens Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		loader:  loader,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_sweep ---
	s.AddTool(mcp.NewTool("analyze_sweep",
		mcp.WithDescription("Analyze a hyperparameter sweep results CSV and return a structured anomaly summary."),
		mcp.WithString("csv_path", mcp.Description("Path to the sweep results CSV file."), mcp.Required()),
		mcp.WithString("metric_cols", mcp.Description("Comma-separated metric columns to scan for NaN/Inf values.")),
		mcp.WithString("completed_status", mcp.Description("Status value that marks a successful trial. Defaults to 'completed'.")),
		mcp.WithNumber("overfit_ratio", mcp.Description("Validation/train loss ratio at which a trial is flagged as overfitting. Defaults to 1.5.")),
		mcp.WithNumber("min_epochs", mcp.Description("Minimum epochs before the overfitting check applies. Defaults to 5.")),
		mcp.WithNumber("short_run_quantile", mcp.Description("Quantile of epochs/runtime below which a trial is a short run. Defaults to 0.1.")),
		mcp.WithString("params", mcp.Description("Comma-separated hyperparameter columns to correlate against issues.")),
	), h.handleAnalyzeSweep)

	// --- 2. Tool: sweep_issues ---
	s.AddTool(mcp.NewTool("sweep_issues",
		mcp.WithDescription("List every per-trial issue detected in a sweep results CSV."),
		mcp.WithString("csv_path", mcp.Description("Path to the sweep results CSV file."), mcp.Required()),
		mcp.WithString("metric_cols", mcp.Description("Comma-separated metric columns to scan for NaN/Inf values.")),
		mcp.WithString("completed_status", mcp.Description("Status value that marks a successful trial.")),
		mcp.WithNumber("overfit_ratio", mcp.Description("Validation/train loss ratio threshold.")),
		mcp.WithNumber("min_epochs", mcp.Description("Minimum epochs before the overfitting check applies.")),
		mcp.WithNumber("short_run_quantile", mcp.Description("Quantile threshold for short-run detection.")),
	), h.handleSweepIssues)

	// --- 3. Tool: sweep_correlations ---
	s.AddTool(mcp.NewTool("sweep_correlations",
		mcp.WithDescription("Break down issue rates per hyperparameter value or bucket for a sweep results CSV."),
		mcp.WithString("csv_path", mcp.Description("Path to the sweep results CSV file."), mcp.Required()),
		mcp.WithString("params", mcp.Description("Comma-separated hyperparameter columns to analyze. Defaults to every non-bookkeeping column.")),
	), h.handleSweepCorrelations)

	// --- 4. Tool: history_status ---
	s.AddTool(mcp.NewTool("history_status",
		mcp.WithDescription("Report the status of the run history store (backend, run counts, table sizes)."),
	), h.handleHistoryStatus)

	return s
}

// StartMCPServer starts the Sweeplens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, loader contract.TableLoader, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, loader, mgr)
	return server.ServeStdio(s)
}
