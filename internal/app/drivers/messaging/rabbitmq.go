package messaging

import (
	"fmt"
	"labcore-service/internal/app/config"
	"log"

	"github.com/rabbitmq/amqp091-go"
)

// NewRabbitMQ opens the broker connection used to flag critical values and
// amendments to downstream notifiers. The engine only publishes; delivery
// and acknowledgement live with the consumers.
func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	url := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		driverConfig.RabbitMQ.Username,
		driverConfig.RabbitMQ.Password,
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)
	conn, err := amqp091.Dial(url)
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ: %s", err.Error())
	}
	log.Println("Successfully connected to rabbitMQ")
	return conn
}
