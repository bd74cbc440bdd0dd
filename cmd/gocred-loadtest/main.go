// Command gocred-loadtest measures credential store and verify throughput
// against a real or embedded Redis backend.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	goCred "github.com/MrEthical07/goCred"
)

func main() {
	var (
		users       = flag.Int("users", 1000, "number of users to seed")
		concurrency = flag.Int("concurrency", 32, "number of concurrent workers")
		ops         = flag.Int("ops", 5000, "verify operations to run")
		role        = flag.String("role", "employee", "role policy to use")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "sc", "credential key prefix")
	)
	flag.Parse()

	if *users <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "users, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		fmt.Fprintf(os.Stderr, "key generation failed: %v\n", err)
		os.Exit(1)
	}

	cfg := goCred.Config{}
	cfg.Store.RedisPrefix = *prefix
	cfg.Audit.Enabled = false
	cfg.Metrics.Enabled = true
	// Floor-level iterations: this tool measures engine overhead, not KDF
	// wall time.
	cfg.Hasher.PBKDF2.Iterations = 10_000
	cfg.Hasher.PBKDF2.SaltLength = 32
	cfg.Hasher.PBKDF2.KeyLength = 64

	engine, err := goCred.New().
		WithConfig(cfg).
		WithRedis(client).
		WithEncryptionKey(key).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build failed: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	passwords := make([]string, *users)
	fmt.Printf("seeding %d users...\n", *users)
	startSeed := time.Now()
	for i := range passwords {
		pw, err := engine.Generate(*role)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate failed: %v\n", err)
			os.Exit(1)
		}
		passwords[i] = pw
		if _, err := engine.Store(ctx, userID(i), pw, *role); err != nil {
			fmt.Fprintf(os.Stderr, "store failed for user %d: %v\n", i, err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s (%.0f store/s)\n", time.Since(startSeed), float64(*users)/time.Since(startSeed).Seconds())

	var (
		next      atomic.Int64
		failures  atomic.Int64
		latencies = make([]time.Duration, *ops)
		wg        sync.WaitGroup
	)

	fmt.Printf("running %d verify ops with %d workers...\n", *ops, *concurrency)
	startOps := time.Now()
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= *ops {
					return
				}
				u := i % *users
				opStart := time.Now()
				ok, err := engine.Verify(ctx, userID(u), passwords[u])
				latencies[i] = time.Since(opStart)
				if err != nil || !ok {
					failures.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(startOps)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	fmt.Printf("done in %s (%.0f verify/s), %d failures\n", elapsed, float64(*ops)/elapsed.Seconds(), failures.Load())
	fmt.Printf("latency p50=%s p95=%s p99=%s max=%s\n",
		latencies[*ops/2],
		latencies[*ops*95/100],
		latencies[*ops*99/100],
		latencies[*ops-1],
	)

	snap := engine.MetricsSnapshot()
	fmt.Printf("metrics: store_success=%d verify_success=%d verify_failure=%d\n",
		snap.Counters[goCred.MetricStoreSuccess],
		snap.Counters[goCred.MetricVerifySuccess],
		snap.Counters[goCred.MetricVerifyFailure],
	)
}

func userID(i int) string {
	return fmt.Sprintf("user-%06d", i)
}
