package utils

import (
	"encoding/json"
	"fmt"
	"goldloan/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// RecognizedAppraiser is the sidecar's view of a matched appraiser
type RecognizedAppraiser struct {
	Name        string  `json:"name"`
	AppraiserID string  `json:"appraiser_id"`
	Similarity  float64 `json:"similarity"`
	DbID        int     `json:"db_id"`
	ImageData   string  `json:"image_data"`
}

// RecognitionResult is the sidecar response for a recognize call
type RecognitionResult struct {
	Recognized    bool                 `json:"recognized"`
	Appraiser     *RecognizedAppraiser `json:"appraiser,omitempty"`
	Message       string               `json:"message,omitempty"`
	ServiceStatus string               `json:"service_status,omitempty"`
	Error         string               `json:"error,omitempty"`
}

// Offline reports whether the sidecar signalled that recognition is
// unavailable rather than that no appraiser matched
func (r *RecognitionResult) Offline() bool {
	return r.ServiceStatus == "offline"
}

// RegistrationResult is the sidecar response for a register call
type RegistrationResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	AppraiserID   string `json:"appraiser_id,omitempty"`
	ServiceStatus string `json:"service_status,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ServiceStatus is the sidecar health response
type ServiceStatus struct {
	Available bool    `json:"available"`
	Threshold float64 `json:"threshold"`
	Service   string  `json:"service"`
}

func recognitionClient() *resty.Client {
	return resty.New().
		SetBaseURL(config.AppConfig.RecognitionURL).
		SetTimeout(time.Duration(config.AppConfig.RecognitionTimeout) * time.Second)
}

// offlineResult is returned when the sidecar cannot be reached. Recognition
// being down must not block the appraisal workflow, so it degrades to the
// no-match path instead of an error.
func offlineResult() *RecognitionResult {
	return &RecognitionResult{
		Recognized:    false,
		Message:       "Face recognition service is currently unavailable. Please try again later or contact support.",
		ServiceStatus: "offline",
	}
}

// RecognizeFace sends an image to the recognition sidecar and returns its
// verdict. Transport failures map to the offline result, input rejections
// (no face / multiple faces) come back in the Error field.
func RecognizeFace(imageB64 string) *RecognitionResult {
	resp, err := recognitionClient().R().
		SetFormData(map[string]string{"image": imageB64}).
		Post("/recognize")
	if err != nil {
		log.Printf("Recognition sidecar unreachable: %v", err)
		return offlineResult()
	}

	var result RecognitionResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		log.Printf("Invalid recognition sidecar response: %v", err)
		return offlineResult()
	}

	if resp.StatusCode() >= 500 && result.Error == "" {
		return offlineResult()
	}

	return &result
}

// RegisterFace registers an appraiser's face with the sidecar
func RegisterFace(name, appraiserID, imageB64 string) (*RegistrationResult, error) {
	resp, err := recognitionClient().R().
		SetFormData(map[string]string{
			"name":         name,
			"appraiser_id": appraiserID,
			"image":        imageB64,
		}).
		Post("/register")
	if err != nil {
		return nil, fmt.Errorf("recognition sidecar unreachable: %w", err)
	}

	var result RegistrationResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("invalid registration response: %w", err)
	}
	return &result, nil
}

// RecognitionStatus fetches sidecar availability
func RecognitionStatus() *ServiceStatus {
	resp, err := recognitionClient().R().Get("/status")
	if err != nil {
		return &ServiceStatus{Available: false, Service: "FacialRecognitionService"}
	}

	var status ServiceStatus
	if err := json.Unmarshal(resp.Body(), &status); err != nil {
		return &ServiceStatus{Available: false, Service: "FacialRecognitionService"}
	}
	return &status
}
