package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ryansname/bmscheck/src/advisor"
)

// readingPayload mirrors advisor.Reading with pointers so missing fields can be detected
type readingPayload struct {
	Health        *float64 `json:"health"`
	ChargeRate    *float64 `json:"charge_rate"`
	StateOfCharge *float64 `json:"state_of_charge"`
	Temperature   *float64 `json:"temperature"`
}

// verdictPayload is the published evaluation result
type verdictPayload struct {
	advisor.Verdict
	Failed      []advisor.Factor `json:"failed"`
	Explanation []string         `json:"explanation"`
}

// decodeReading parses a JSON request; every factor is required
func decodeReading(payload []byte) (advisor.Reading, error) {
	var p readingPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return advisor.Reading{}, fmt.Errorf("decoding reading: %w", err)
	}

	missing := []string{}
	if p.Health == nil {
		missing = append(missing, "health")
	}
	if p.ChargeRate == nil {
		missing = append(missing, "charge_rate")
	}
	if p.StateOfCharge == nil {
		missing = append(missing, "state_of_charge")
	}
	if p.Temperature == nil {
		missing = append(missing, "temperature")
	}
	if len(missing) > 0 {
		return advisor.Reading{}, fmt.Errorf("reading missing fields: %v", missing)
	}

	return advisor.Reading{
		Health:        *p.Health,
		ChargeRate:    *p.ChargeRate,
		StateOfCharge: *p.StateOfCharge,
		Temperature:   *p.Temperature,
	}, nil
}

// encodeVerdict builds the JSON state payload for a verdict
func encodeVerdict(a *advisor.Advisor, v advisor.Verdict) ([]byte, error) {
	failed := v.Failed()
	if failed == nil {
		failed = []advisor.Factor{}
	}
	return json.Marshal(verdictPayload{
		Verdict:     v,
		Failed:      failed,
		Explanation: a.Explain(v),
	})
}

// evaluatorWorker evaluates incoming readings and publishes the verdict
func evaluatorWorker(
	ctx context.Context,
	msgChan <-chan ReadingMessage,
	config EvaluatorConfig,
	sender *MQTTSender,
) {
	log.Printf("%s evaluator worker started\n", config.Name)

	adv := advisor.NewAdvisor(config.Thresholds)

	for {
		select {
		case msg := <-msgChan:
			reading, err := decodeReading(msg.Payload)
			if err != nil {
				log.Printf("%s: Dropping request on %s: %v\n", config.Name, msg.Topic, err)
				continue
			}

			verdict := adv.Evaluate(reading)
			if !verdict.OK {
				log.Printf("%s: Reading failed checks: %v\n", config.Name, verdict.Failed())
			}

			payloadBytes, err := encodeVerdict(adv, verdict)
			if err != nil {
				log.Printf("%s: Failed to marshal verdict payload: %v\n", config.Name, err)
				continue
			}

			sender.Send(MQTTMessage{
				Topic:   config.VerdictTopic,
				Payload: payloadBytes,
				QoS:     0,
				Retain:  false,
			})

		case <-ctx.Done():
			log.Printf("%s evaluator worker stopped\n", config.Name)
			return
		}
	}
}
