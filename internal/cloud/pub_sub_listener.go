// Copyright 2025 Skylark Media, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file defines a reusable Pub/Sub listener that hands each received
// message to a pipeline command.
//
// Logic Flow:
//  1. A PubSubListener is built around a subscription; the command is
//     attached later, once the pipeline chain has been assembled.
//  2. Listen starts a background goroutine that blocks in Receive.
//  3. Each message gets its own span and a fresh chain context with the
//     raw message body under CtxIn.
//  4. The message is acked only when the chain finishes without recording
//     an error; otherwise the ack deadline lapses and Pub/Sub redelivers
//     per the subscription's retry policy.
package cloud

import (
	"context"
	"log"

	"cloud.google.com/go/pubsub"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/cor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PubSubListener couples one subscription to one pipeline command.
// Listeners outlive individual API requests, which is why they live with
// the cloud wiring rather than the HTTP layer.
type PubSubListener struct {
	client       *pubsub.Client
	subscription *pubsub.Subscription
	command      cor.Command
}

// NewPubSubListener builds a listener for the given subscription ID. The
// command may be nil at construction and attached later with SetCommand.
//
// Inputs:
//   - pubsubClient: An authenticated Pub/Sub client.
//   - subscriptionID: The subscription to pull from.
//   - command: The pipeline command run for each message, or nil.
//
// Outputs:
//   - *PubSubListener: The configured listener.
//   - error: Reserved for construction failures.
func NewPubSubListener(
	pubsubClient *pubsub.Client,
	subscriptionID string,
	command cor.Command,
) (cmd *PubSubListener, err error) {
	sub := pubsubClient.Subscription(subscriptionID)

	cmd = &PubSubListener{
		client:       pubsubClient,
		subscription: sub,
		command:      command,
	}
	return cmd, nil
}

// SetCommand attaches the processing command. A command already attached
// is never overwritten, so startup wiring stays deterministic.
func (m *PubSubListener) SetCommand(command cor.Command) {
	if m.command == nil {
		m.command = command
	}
}

// Listen starts receiving in a background goroutine. Canceling ctx stops
// the receive loop, which is how graceful shutdown reaches the listener.
func (m *PubSubListener) Listen(ctx context.Context) {
	log.Printf("listening: %s", m.subscription)

	go func() {
		tracer := otel.Tracer("message-listener")

		err := m.subscription.Receive(ctx, func(_ context.Context, msg *pubsub.Message) {
			spanCtx, span := tracer.Start(ctx, "receive-message")
			span.SetName("receive-message")
			span.SetAttributes(attribute.String("msg", string(msg.Data)))
			log.Println("received message")

			chainCtx := cor.NewBaseContext()
			chainCtx.SetContext(spanCtx)
			chainCtx.Add(cor.CtxIn, string(msg.Data))

			m.command.Execute(chainCtx)

			if !chainCtx.HasErrors() {
				span.SetStatus(codes.Ok, "success")
				msg.Ack()
			} else {
				span.SetStatus(codes.Error, "failed")
				for _, e := range chainCtx.GetErrors() {
					log.Printf("error executing chain: %v", e)
				}
				// No Ack and no Nack: the ack deadline lapses and the
				// message is redelivered per the retry policy.
			}

			span.End()
		})

		if err != nil {
			log.Printf("error receiving data: %v", err)
		}
	}()
}
