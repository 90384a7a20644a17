package main

import (
	"context"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// ReadingMessage represents an incoming evaluation request
type ReadingMessage struct {
	Topic   string
	Payload []byte
}

// mqttWorker manages the MQTT connection and forwards requests to a channel
func mqttWorker(
	ctx context.Context,
	broker string,
	topics []string,
	username, password, clientID string,
	msgChan chan<- ReadingMessage,
	clientChan chan<- mqtt.Client,
) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:1883", broker))
	opts.SetClientID(clientID)
	opts.SetUsername(username)
	opts.SetPassword(password)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetryInterval(5 * time.Second)

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		log.Printf("MQTT connection lost: %v\n", err)
	})

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		log.Printf("Connected to MQTT broker at %s\n", broker)

		// Send the new client to the sender worker
		select {
		case clientChan <- client:
			log.Println("Sent new MQTT client to sender worker")
		case <-ctx.Done():
			return
		}

		for _, topic := range topics {
			token := client.Subscribe(topic, 1, func(client mqtt.Client, msg mqtt.Message) {
				select {
				case msgChan <- ReadingMessage{Topic: msg.Topic(), Payload: msg.Payload()}:
				case <-ctx.Done():
				}
			})

			if token.Wait() && token.Error() != nil {
				log.Printf("Failed to subscribe to topic %s: %v\n", topic, token.Error())
			} else {
				log.Printf("Subscribed to topic: %s\n", topic)
			}
		}
	})

	client := mqtt.NewClient(opts)

	log.Printf("Connecting to MQTT broker at %s...\n", broker)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Printf("Failed to connect to MQTT broker: %v\n", token.Error())
		return
	}

	<-ctx.Done()

	if client.IsConnected() {
		client.Disconnect(250)
		log.Println("Disconnected from MQTT broker")
	}
}
