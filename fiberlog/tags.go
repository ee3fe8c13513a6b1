package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid       = "pid"
	TagStatus    = "status"
	TagLatency   = "latency"
	TagMethod    = "method"
	TagPath      = "path"
	TagIP        = "ip"
	TagBytesSent = "bytes_sent"
	TagRequestID = "request_id"
	TagUserAgent = "user_agent"
)

// HeaderRequestID is echoed into the request_id field when present.
const HeaderRequestID = "X-Request-ID"

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag extracts one log field from the finished request.
type FuncTag func(c *fiber.Ctx, d *data) interface{}

var funcTags = map[string]FuncTag{
	TagPid: func(_ *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Response().StatusCode()
	},
	TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Path()
	},
	TagIP: func(c *fiber.Ctx, _ *data) interface{} {
		return c.IP()
	},
	TagBytesSent: func(c *fiber.Ctx, _ *data) interface{} {
		return len(c.Response().Body())
	},
	TagRequestID: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Get(HeaderRequestID)
	},
	TagUserAgent: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Get(fiber.HeaderUserAgent)
	},
}

// getFuncTagMap returns the extractors for the configured tags, unknown tags are ignored.
func getFuncTagMap(cfg Config) map[string]FuncTag {
	ftm := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := funcTags[tag]; ok {
			ftm[tag] = ft
		}
	}
	return ftm
}
