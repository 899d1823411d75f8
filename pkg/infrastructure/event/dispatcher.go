package event

import (
	log "github.com/sirupsen/logrus"

	"github.com/marcostmunhoz/fiap-tech-challenge-fastfood-monolith/pkg/common/domain"
)

// LogDispatcher writes every domain event to the structured log. It stands in
// for a message broker until one is wired up.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Dispatch(event domain.Event) error {
	log.WithFields(log.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("domain event dispatched")
	return nil
}
