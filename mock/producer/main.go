// Package main runs a mock content producer for local development. It
// answers /api/generate with content derived from the transcript and can
// inject failures and free-form output to exercise retries and parsing.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"social-content-service/internal/domain"
	"social-content-service/internal/infra/producer"
	"social-content-service/internal/transcript"
)

func main() {
	failureRate := envFloat("MOCK_FAILURE_RATE", 0.1)
	proseRate := envFloat("MOCK_PROSE_RATE", 0.2)
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "8081"
	}

	app := fiber.New(fiber.Config{AppName: "mock-producer", DisableStartupMessage: true})

	app.Post(producer.GenerateEndpoint, func(c *fiber.Ctx) error {
		// Simulate model latency (100-400ms)
		time.Sleep(time.Duration(100+rand.Intn(300)) * time.Millisecond)

		var req producer.GenerateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request")
		}

		if rand.Float64() < failureRate {
			log.Printf("[Mock Producer] %s - injected 503", req.Platform)
			return fiber.NewError(fiber.StatusServiceUnavailable, "model overloaded")
		}

		payload := buildPayload(req)
		body, err := json.Marshal(payload)
		if err != nil {
			return err
		}

		// Models often wrap JSON in prose.
		if rand.Float64() < proseRate {
			log.Printf("[Mock Producer] %s - 200 OK (prose)", req.Platform)
			return c.SendString("Sure! Here is your post:\n" + string(body) + "\nLet me know if you want changes.")
		}

		log.Printf("[Mock Producer] %s - 200 OK", req.Platform)
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	})

	app.Get(producer.HealthEndpoint, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	log.Printf("Mock producer running on :%s", port)
	log.Fatal(app.Listen(":" + port))
}

func buildPayload(req producer.GenerateRequest) producer.Payload {
	c := req.Options.Constraints
	keywords := req.Options.Keywords
	if len(keywords) == 0 {
		keywords = transcript.ExtractKeywords(req.Transcript.Content, transcript.DefaultMaxKeywords)
	}

	title := req.Transcript.Title
	if title == "" {
		title = titleFrom(keywords)
	}
	if c.TitleMaxLength > 0 && len([]rune(title)) > c.TitleMaxLength {
		title = string([]rune(title)[:c.TitleMaxLength])
	}

	want := c.TagMinCount
	if want < 3 {
		want = 3
	}
	if c.TagMaxCount > 0 && want > c.TagMaxCount {
		want = c.TagMaxCount
	}
	tags := make([]string, 0, want)
	for i := 0; len(tags) < want; i++ {
		if i < len(keywords) {
			tags = append(tags, "#"+strings.ReplaceAll(keywords[i], " ", ""))
			continue
		}
		tags = append(tags, fmt.Sprintf("#topic%d", i))
	}

	confidence := 0.75 + rand.Float64()*0.2
	summary := transcript.Summarize(transcript.Clean(req.Transcript.Content))

	payload := producer.Payload{
		Title:      title,
		Tags:       tags,
		Confidence: &confidence,
	}

	switch req.Platform {
	case domain.PlatformYouTube, domain.PlatformFacebook:
		payload.Description = summary
	case domain.PlatformInstagram, domain.PlatformTikTok:
		payload.Caption = summary
	case domain.PlatformXTwitter:
		payload.PostBody = summary
	case domain.PlatformLinkedIn:
		payload.PostBody = summary
		payload.Headline = title
	case domain.PlatformTwitch:
		payload.StreamCategory = "Just Chatting"
	}

	return payload
}

func titleFrom(keywords []string) string {
	if len(keywords) == 0 {
		return "Untitled Post"
	}
	n := min(len(keywords), 4)
	words := make([]string, n)
	for i, k := range keywords[:n] {
		r := []rune(k)
		words[i] = strings.ToUpper(string(r[:1])) + string(r[1:])
	}
	return strings.Join(words, " ") + " Explained"
}

func envFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}
