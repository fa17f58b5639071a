package websocket

import "github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/move"

// ClientMessage is anything a client sends. Only "analyze" is understood.
type ClientMessage struct {
	Type string `json:"type"`
	move.Request
}

// DepthMessage is streamed after each completed search depth.
type DepthMessage struct {
	Type      string `json:"type"`
	Depth     int    `json:"depth"`
	Column    int    `json:"column"`
	Score     int    `json:"score"`
	Nodes     int64  `json:"nodes"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// DecisionMessage closes an analysis.
type DecisionMessage struct {
	Type string `json:"type"`
	move.Response
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
