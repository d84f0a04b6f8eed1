// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"github.com/allisson/iot-onboarding/internal/fleet/domain"
)

// DeviceResponse represents a registered device in API responses.
type DeviceResponse struct {
	ThingName  string            `json:"thing_name"`
	ThingArn   string            `json:"thing_arn"`
	Attributes map[string]string `json:"attributes"`
}

// MapDeviceToResponse converts a domain device to an API response.
func MapDeviceToResponse(device *domain.Device) DeviceResponse {
	attributes := device.Attributes
	if attributes == nil {
		attributes = map[string]string{}
	}
	return DeviceResponse{
		ThingName:  device.ThingName,
		ThingArn:   device.ThingArn,
		Attributes: attributes,
	}
}

// ListDevicesResponse represents the full device registry in API responses.
type ListDevicesResponse struct {
	Data []DeviceResponse `json:"data"`
}

// MapDevicesToListResponse converts a slice of domain devices to a list API response.
func MapDevicesToListResponse(devices []*domain.Device) ListDevicesResponse {
	deviceResponses := make([]DeviceResponse, 0, len(devices))
	for _, device := range devices {
		deviceResponses = append(deviceResponses, MapDeviceToResponse(device))
	}
	return ListDevicesResponse{
		Data: deviceResponses,
	}
}
