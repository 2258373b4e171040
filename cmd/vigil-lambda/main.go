//go:build lambda

// Command vigil-lambda serves one layout optimization per function URL request.
// The body is a JSON scenario with optional "config" overrides and "hour":
//
//	{"sensors": 3, "targets": [[2, 3, 8], [7, 7, 5]], "config": {"seed": 7}, "hour": 23}
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/tidwall/gjson"

	"github.com/lixenwraith/vigil/alarm"
	"github.com/lixenwraith/vigil/optimizer"
	"github.com/lixenwraith/vigil/parameter"
	"github.com/lixenwraith/vigil/render"
	"github.com/lixenwraith/vigil/scenario"
)

// maxWork bounds population size times generations per request
const maxWork = 1_000_000

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

var logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	sc, err := scenario.ParseJSON([]byte(body))
	if err != nil {
		return errResp(400, err.Error())
	}

	cfg := optimizer.DefaultConfig()
	cfg.Sensors = sc.SensorCount(cfg.Sensors)
	if sc.GridSize > 0 {
		cfg.GridSize = sc.GridSize
	}
	if raw := gjson.Get(body, "config"); raw.Exists() {
		if err := json.Unmarshal([]byte(raw.Raw), &cfg); err != nil {
			return errResp(400, "invalid config: "+err.Error())
		}
	}
	if cfg.PopulationSize > maxWork/max(cfg.Generations, 1) {
		return errResp(400, "population size times generations exceeds request budget")
	}

	hour := float64(parameter.AlarmDefaultHour)
	if h := gjson.Get(body, "hour"); h.Exists() {
		if h.Type != gjson.Number {
			return errResp(400, "hour must be a number")
		}
		hour = h.Float()
	}

	var opts []optimizer.Option
	opts = append(opts, optimizer.WithLogger(logger))
	if len(sc.Installation) > 0 {
		opts = append(opts, optimizer.WithInstallation(sc.Installation))
	}

	result, err := optimizer.Run(ctx, sc.Targets, cfg, opts...)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errResp(504, "optimization timed out")
	case err != nil:
		return errResp(400, err.Error())
	}

	report := &render.Report{
		Scenario:    sc.Name,
		Targets:     sc.Targets,
		GridSize:    cfg.GridSize,
		Hour:        hour,
		Result:      result,
		Assessments: alarm.Assess(result.Best, sc.Targets, hour),
	}

	var buf bytes.Buffer
	if err := render.JSON(&buf, report); err != nil {
		return errResp(500, err.Error())
	}
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: buf.String()}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
