package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/store-orders/internal/config"
	"github.com/SergeyBogomolovv/store-orders/internal/hashid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
)

const (
	baseURL     = "http://localhost:8080/orders"
	storesCount = 5
	productsMax = 20
)

type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CreateOrder struct {
	StoreID string  `json:"store_id"`
	Items   []Line  `json:"items"`
	Notes   *string `json:"notes,omitempty"`
}

func adminToken(secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   1,
		"email": "generator@example.com",
		"role":  "admin",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func generateRandomOrder(ids *hashid.Codec) CreateOrder {
	lines := make([]Line, 0, 3)
	seen := make(map[int64]bool)
	for range rand.Intn(3) + 1 {
		productID := int64(rand.Intn(productsMax) + 1)
		if seen[productID] {
			continue
		}
		seen[productID] = true
		lines = append(lines, Line{ProductID: ids.Encode(productID), Quantity: rand.Intn(5) + 1})
	}

	order := CreateOrder{
		StoreID: ids.Encode(int64(rand.Intn(storesCount) + 1)),
		Items:   lines,
	}
	if rand.Intn(4) == 0 {
		notes := fmt.Sprintf("deliver before %02d:00", rand.Intn(12)+8)
		order.Notes = &notes
	}
	return order
}

func postOrder(ctx context.Context, token string, order CreateOrder) (string, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return resp.Status, nil
}

// tailEvents печатает события заказов из Kafka, если она включена.
func tailEvents(ctx context.Context, cfg config.Kafka) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     "order-generator",
		StartOffset: kafka.LastOffset,
	})
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			return
		}
		log.Printf("event %s: %s", msg.Key, msg.Value)
	}
}

func main() {
	godotenv.Load()
	conf := config.New()

	ids, err := hashid.New(conf.HashID.Salt, conf.HashID.MinLength)
	if err != nil {
		log.Fatal(err)
	}
	token, err := adminToken(conf.Auth.JWTSecret)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if conf.Kafka.Enabled {
		go tailEvents(ctx, conf.Kafka)
	}

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			order := generateRandomOrder(ids)
			status, err := postOrder(ctx, token, order)
			if err != nil {
				log.Println("request failed:", err)
				continue
			}
			log.Println("order generated", order.StoreID, len(order.Items), "->", status)
		case <-ctx.Done():
			return
		}
	}
}
