package main

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTMessage represents an outgoing MQTT message
type MQTTMessage struct {
	Topic   string
	Payload []byte
	QoS     byte
	Retain  bool
}

// MQTTSender wraps a channel for sending MQTT messages with helper methods
type MQTTSender struct {
	ch chan<- MQTTMessage
}

// NewMQTTSender creates a new MQTTSender wrapping the given channel
func NewMQTTSender(ch chan<- MQTTMessage) *MQTTSender {
	return &MQTTSender{ch: ch}
}

// Send sends a raw MQTTMessage
func (s *MQTTSender) Send(msg MQTTMessage) {
	s.ch <- msg
}

// CreateVerdictEntity creates a Home Assistant problem binary_sensor via MQTT discovery.
// The sensor is "on" (problem) whenever the verdict fails.
func (s *MQTTSender) CreateVerdictEntity(config EvaluatorConfig) error {
	type haDeviceConfig struct {
		Identifiers  []string `json:"identifiers"`
		Name         string   `json:"name"`
		Manufacturer string   `json:"manufacturer,omitempty"`
		Model        string   `json:"model,omitempty"`
	}

	type haBinarySensorConfig struct {
		Name                string         `json:"name,omitempty"`
		DeviceClass         string         `json:"device_class"`
		StateTopic          string         `json:"state_topic"`
		JsonAttributesTopic string         `json:"json_attributes_topic,omitempty"`
		ValueTemplate       string         `json:"value_template"`
		PayloadOn           string         `json:"payload_on"`
		PayloadOff          string         `json:"payload_off"`
		UniqueId            string         `json:"unique_id"`
		ExpireAfter         uint           `json:"expire_after,omitempty"`
		Device              haDeviceConfig `json:"device"`
	}

	deviceId := strings.ReplaceAll(strings.ToLower(config.Name), " ", "_")

	entity := haBinarySensorConfig{
		Name:                "Battery Problem",
		DeviceClass:         "problem",
		StateTopic:          config.VerdictTopic,
		JsonAttributesTopic: config.VerdictTopic,
		ValueTemplate:       "{{ 'OFF' if value_json.ok else 'ON' }}",
		PayloadOn:           "ON",
		PayloadOff:          "OFF",
		UniqueId:            deviceId + "_verdict",
		ExpireAfter:         60 * 30, // 30 minutes
		Device: haDeviceConfig{
			Identifiers:  []string{deviceId},
			Name:         config.Name,
			Manufacturer: "Custom",
			Model:        "bmscheck",
		},
	}

	payload, err := json.Marshal(entity)
	if err != nil {
		return err
	}

	s.Send(MQTTMessage{
		Topic:   config.ConfigTopic,
		Payload: payload,
		QoS:     2,
		Retain:  true,
	})

	return nil
}

// mqttSenderWorker publishes outgoing messages, queuing them until a client is connected
func mqttSenderWorker(
	ctx context.Context,
	outgoingChan <-chan MQTTMessage,
	clientChan <-chan mqtt.Client,
) {
	log.Println("MQTT sender worker started")

	var client mqtt.Client
	var messageQueue []MQTTMessage

	for {
		select {
		case newClient := <-clientChan:
			log.Println("MQTT sender worker received new client")
			client = newClient

			// Process any queued messages now that we have a client
			if client != nil && client.IsConnected() {
				queuedCount := len(messageQueue)
				for _, msg := range messageQueue {
					publish(client, msg)
				}
				messageQueue = nil
				if queuedCount > 0 {
					log.Printf("MQTT sender worker processed %d queued messages\n", queuedCount)
				}
			}

		case msg := <-outgoingChan:
			if client != nil && client.IsConnected() {
				publish(client, msg)
			} else {
				messageQueue = append(messageQueue, msg)
				log.Printf("MQTT sender worker queued message (total queued: %d)\n", len(messageQueue))
			}

		case <-ctx.Done():
			log.Println("MQTT sender worker stopped")
			return
		}
	}
}

func publish(client mqtt.Client, msg MQTTMessage) {
	token := client.Publish(msg.Topic, msg.QoS, msg.Retain, msg.Payload)
	token.Wait()
	if token.Error() != nil {
		log.Printf("Failed to publish to %s: %v\n", msg.Topic, token.Error())
	}
}
