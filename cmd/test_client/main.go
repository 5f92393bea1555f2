package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Fixture posting served by the linkedin source
const testJobID = "3123456789"

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "streamable MCP endpoint")
	flag.Parse()

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobapply-gateway-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testSearchJobs(ctx, session)
	testJobDetails(ctx, session)
	testApply(ctx, session)
	testHistory(ctx, session)

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testSearchJobs(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: search_jobs")
	call(ctx, session, "search_jobs", map[string]any{
		"title":    "DevOps Engineer",
		"location": "London",
		"limit":    3,
	})
}

func testJobDetails(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: get_job_details")
	call(ctx, session, "get_job_details", map[string]any{"job_id": testJobID})

	fmt.Println("  unknown job id")
	call(ctx, session, "get_job_details", map[string]any{"job_id": "missing"})
}

func testApply(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: apply_to_job")
	call(ctx, session, "apply_to_job", map[string]any{"job_id": testJobID})
}

func testHistory(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: get_application_history")
	call(ctx, session, "get_application_history", map[string]any{"limit": 5})
}

func call(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return
	}
	if result.IsError {
		fmt.Printf("  %s returned an error:\n", name)
	}
	printResult(result)
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
