package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"
)

const baseURL = "http://localhost:8080/orders/"

// ORDER_ID хэшированный id существующего заказа, TOKEN bearer токен.
var (
	fixedID = os.Getenv("ORDER_ID")
	token   = os.Getenv("TOKEN")
)

func main() {
	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(doRequest)
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func randomID(length int) string {
	chars := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	id := make([]rune, length)
	for i := range id {
		id[i] = chars[rand.Intn(len(chars))]
	}
	return string(id)
}

func doRequest() {
	path := fixedID
	switch rand.Intn(10) {
	case 0:
		path = randomID(12)
	case 1:
		path = fixedID + "/manifest"
	case 2:
		path = ""
	}

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
	} else {
		fmt.Println("GET", req.URL, "->", resp.Status)
		resp.Body.Close()
	}
}
