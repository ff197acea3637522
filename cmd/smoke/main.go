// Command smoke checks a running trigrid instance: every cell must round
// trip through the forward and inverse endpoints, and an out-of-range cell
// must be rejected. Redis and Kafka are probed when their addresses are set.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/IBM/sarama"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/mohammed-shakir/triangle-grid/internal/core/model"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

type client struct {
	base string
	http *http.Client
}

func (c *client) get(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read %s: %w", path, err)
	}
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(b, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}

func sweep(ctx context.Context, c *client) error {
	fmt.Println("API sweep")
	var all []model.Coordinates
	if code, err := c.get(ctx, "/api/triangle", &all); err != nil || code != http.StatusOK {
		return fmt.Errorf("list all: status=%d err=%v", code, err)
	}
	if len(all) != 72 {
		return fmt.Errorf("list all returned %d entries, want 72", len(all))
	}

	i := 0
	for _, row := range model.Rows() {
		for col := 1; col <= 12; col++ {
			var coords model.Coordinates
			path := fmt.Sprintf("/api/triangle/%s/%d", row, col)
			if code, err := c.get(ctx, path, &coords); err != nil || code != http.StatusOK {
				return fmt.Errorf("%s: status=%d err=%v", path, code, err)
			}
			if coords != all[i] {
				return fmt.Errorf("%s%d: %s differs from list entry %d %s", row, col, coords, i, all[i])
			}

			var addr model.Address
			inv := fmt.Sprintf("/api/triangle/%s", vertexPath(coords))
			if code, err := c.get(ctx, inv, &addr); err != nil || code != http.StatusOK {
				return fmt.Errorf("%s: status=%d err=%v", inv, code, err)
			}
			if addr.Row != row.String() || addr.Column != col {
				return fmt.Errorf("%s%d round tripped to %s%d", row, col, addr.Row, addr.Column)
			}
			i++
		}
	}

	if code, err := c.get(ctx, "/api/triangle/G/1", nil); err != nil || code != http.StatusBadRequest {
		return fmt.Errorf("G1: status=%d err=%v, want 400", code, err)
	}
	fmt.Println("sweep ok: 72 cells round tripped")
	return nil
}

func vertexPath(c model.Coordinates) string {
	parts := []int{c.V1.X, c.V1.Y, c.V2.X, c.V2.Y, c.V3.X, c.V3.Y}
	s := make([]string, len(parts))
	for i, n := range parts {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, "/")
}

func testRedis(ctx context.Context, addr string) error {
	fmt.Println("Redis test")
	rdb := redis.NewClient(&redis.Options{Addr: addr, DialTimeout: 2 * time.Second})
	defer func() { _ = rdb.Close() }()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	n, err := rdb.Keys(ctx, "trigrid:v1:*").Result()
	if err != nil {
		return fmt.Errorf("redis keys: %w", err)
	}
	fmt.Println("cached trigrid keys:", len(n))
	return nil
}

func testKafka(brokers []string, topic string) error {
	fmt.Println("Kafka test")
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_5_0_0
	client, err := sarama.NewClient(brokers, cfg)
	if err != nil {
		return fmt.Errorf("kafka client: %w", err)
	}
	defer func() { _ = client.Close() }()

	parts, err := client.Partitions(topic)
	if err != nil {
		return fmt.Errorf("partitions for %s: %w", topic, err)
	}
	var total int64
	for _, p := range parts {
		off, err := client.GetOffset(topic, p, sarama.OffsetNewest)
		if err != nil {
			return fmt.Errorf("offset %s/%d: %w", topic, p, err)
		}
		total += off
	}
	fmt.Printf("topic %s: %d partitions, %d events\n", topic, len(parts), total)
	return nil
}

func main() {
	base := flag.String("base", getenv("TRIGRID_URL", "http://localhost:8090"), "trigrid base URL")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := &client{base: strings.TrimRight(*base, "/"), http: &http.Client{Timeout: 5 * time.Second}}
	if err := sweep(ctx, c); err != nil {
		fmt.Println("API error:", err)
		os.Exit(1)
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		if err := testRedis(ctx, addr); err != nil {
			fmt.Println("Redis error:", err)
			os.Exit(1)
		}
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		if err := testKafka(strings.Split(brokers, ","), getenv("KAFKA_TOPIC", "triangle-lookups")); err != nil {
			fmt.Println("Kafka error:", err)
			os.Exit(1)
		}
	}
	fmt.Println("All checks completed")
}
