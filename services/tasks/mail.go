package tasks

import (
	"encoding/json"

	"serendibgo/models"

	"github.com/hibiken/asynq"
)

const TypeSendMail = "mail:send"

// NewMailTask builds an asynq task carrying an outbound mail payload.
func NewMailTask(payload models.MailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendMail, b), nil
}
