package module

import "sarcasm/internal/services/classify/domain"

// Ports holds the ports exposed by the classify module
type Ports struct {
	Classifier domain.ServicePort
	Model      domain.ModelPort
}
