package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	minuteGrpc "liyu1981.xyz/minute-policy-service/pkg/grpc"
)

var maxChildren int = 1000
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var grpcClient *minuteGrpc.Client

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

func main() {
	childIDs := make([]string, maxChildren)
	for i := 0; i < maxChildren; i++ {
		childIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v child IDs\n", maxChildren)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = minuteGrpc.NewClient(conn)

	fmt.Printf("gRPC client connected\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxChildren; i++ {
		i := i
		wg.Add(1)
		go func() {
			createChild(childIDs[i], i)
			fmt.Printf("\rcreated child %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rcreated %v children: used time=%v seconds, throughput=%v action/second\n",
		maxChildren, usedTime.Seconds(), float64(maxChildren)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxChildren; i++ {
		i := i
		wg.Add(1)
		go func() {
			doAction(childIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v children: used time=%v seconds, throughput=%v action/second\n",
		maxChildren, usedTime.Seconds(), float64(maxChildren*3)/usedTime.Seconds(),
	)
}

func rndInt(n int32) int32 {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(n)
}

func flipCoin() bool {
	return rndInt(100000)%2 == 0
}

func postJSON(path string, payload any) (*http.Response, error) {
	jsonData, _ := json.Marshal(payload)
	return http.Post(fmt.Sprintf("http://%s%s", httpHostPort, path), "application/json", bytes.NewBuffer(jsonData))
}

func createChild(childID string, index int) {
	payload := map[string]any{
		"id":             childID,
		"name":           fmt.Sprintf("child-%d", index),
		"daily_limit":    240,
		"remaining_time": 240,
		"trust_score":    50 + rndInt(50),
		"privileges": []map[string]any{
			{"name": "Extra gaming", "required_score": 70},
		},
	}

	resp, err := postJSON("/children", payload)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		panic(fmt.Sprintf("create child %s: status %v", childID, resp.StatusCode))
	}
}

func doAction(childID string) {
	actions := []func(){
		genRecordUsageAction(childID),
		genGetChildAction(childID),
		genListAlertsAction(childID),
	}
	actionNames := []string{
		"RecordUsage",
		"GetChild",
		"ListAlerts",
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	rndMu.Unlock()
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for child %v", actionNames[index], childID)
		time.Sleep(time.Duration(100+rndInt(1000)) * time.Millisecond)
	}
}

func genRecordUsageAction(childID string) func() {
	return func() {
		minutes := int(1 + rndInt(30))

		if flipCoin() {
			resp, err := postJSON(fmt.Sprintf("/children/%s/usage", childID), map[string]int{"minutes": minutes})
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
			}
		} else {
			if _, err := grpcClient.RecordUsage(context.Background(), childID, minutes); err != nil {
				fmt.Printf("\nerror: %v\n", err)
			}
		}
	}
}

func genGetChildAction(childID string) func() {
	return func() {
		if flipCoin() {
			resp, err := http.Get(fmt.Sprintf("http://%s/children/%s", httpHostPort, childID))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
			}
		} else {
			if _, err := grpcClient.GetChild(context.Background(), childID); err != nil {
				fmt.Printf("\nerror: %v\n", err)
			}
		}
	}
}

func genListAlertsAction(childID string) func() {
	return func() {
		if flipCoin() {
			resp, err := http.Get(fmt.Sprintf("http://%s/alerts?child_id=%s", httpHostPort, childID))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
			}
		} else {
			if _, err := grpcClient.ListAlerts(context.Background(), childID); err != nil {
				fmt.Printf("\nerror: %v\n", err)
			}
		}
	}
}
