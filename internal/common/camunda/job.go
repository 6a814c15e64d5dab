package camunda

import (
	"context"
	"encoding/json"
	"time"

	apperrors "farm-advisor/internal/common/errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const completeTimeout = 10 * time.Second

// DecodeVariables unmarshals job variables into out.
func DecodeVariables(job entities.Job, out interface{}) error {
	if err := json.Unmarshal([]byte(job.Variables), out); err != nil {
		return apperrors.NewParseError(err)
	}
	return nil
}

// CompleteJob sends the complete command with output as variables.
func CompleteJob(client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), completeTimeout)
	defer cancel()
	_, err = cmd.Send(ctx)
	return err
}
