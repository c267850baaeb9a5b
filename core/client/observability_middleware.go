package client

import (
	"context"
	"strings"
	"time"

	"github.com/leofalp/webscout/internal/utils"
	"github.com/leofalp/webscout/providers/ai"
	"github.com/leofalp/webscout/providers/observability"
)

// NewObservabilityMiddleware wraps every model call in an llm.request span
// and logs its outcome. The span and observer are put into the context so
// the provider's HTTP helper can attach request events.
//
// defaultModel labels calls whose request leaves Model empty.
func NewObservabilityMiddleware(observer observability.Provider, defaultModel string) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			model := effectiveModel(request.Model, defaultModel)

			ctx, span := observer.StartSpan(ctx, observability.SpanLLMRequest,
				observability.String(observability.AttrLLMModel, model),
			)
			defer span.End()
			ctx = observability.ContextWithSpan(ctx, span)
			ctx = observability.ContextWithObserver(ctx, observer)

			observer.Debug(ctx, "llm send",
				observability.String(observability.AttrLLMModel, model),
				observability.Int("llm.request.messages", len(request.Messages)),
				observability.Int("llm.request.tools", len(request.Tools)),
			)

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := time.Since(start)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(observability.StatusError, "llm send failed")
				observer.Error(ctx, "llm send failed",
					observability.Error(err),
					observability.Duration(observability.AttrDuration, elapsed),
					observability.String(observability.AttrLLMModel, model),
				)
				return nil, err
			}

			recordSuccess(ctx, span, observer, response, elapsed, model)
			return response, nil
		}
	}
}

func recordSuccess(ctx context.Context, span observability.Span, observer observability.Provider, response *ai.ChatResponse, elapsed time.Duration, model string) {
	logAttrs := []observability.Attribute{
		observability.String(observability.AttrLLMModel, model),
		observability.String(observability.AttrLLMFinishReason, response.FinishReason),
		observability.Duration(observability.AttrDuration, elapsed),
		observability.Int(observability.AttrLoopToolCalls, len(response.ToolCalls)),
	}

	if response.Usage != nil {
		usageAttrs := []observability.Attribute{
			observability.Int(observability.AttrLLMTokensPrompt, response.Usage.PromptTokens),
			observability.Int(observability.AttrLLMTokensCompletion, response.Usage.CompletionTokens),
			observability.Int(observability.AttrLLMTokensTotal, response.Usage.TotalTokens),
		}
		span.SetAttributes(usageAttrs...)
		logAttrs = append(logAttrs, usageAttrs...)
	}

	if len(response.ToolCalls) > 0 {
		names := make([]string, len(response.ToolCalls))
		for i, call := range response.ToolCalls {
			names[i] = call.Function.Name
		}
		logAttrs = append(logAttrs, observability.String("tool_calls", strings.Join(names, ",")))
	}

	if response.Content != "" {
		logAttrs = append(logAttrs, observability.String("response", utils.TruncateString(response.Content, 100)))
	}

	observer.Info(ctx, "llm send completed", logAttrs...)
	span.SetStatus(observability.StatusOK, "")
}

func effectiveModel(requestModel, defaultModel string) string {
	if requestModel != "" {
		return requestModel
	}
	return defaultModel
}
