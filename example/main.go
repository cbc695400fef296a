package main

import (
	"context"
	"fmt"
	"log"

	"github.com/tunaaoguzhann/pow-captcha/core"
)

func main() {
	ctx := context.Background()

	manager, err := core.NewManagerWithOptions(ctx, core.ManagerOptions{})
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}

	challenge, err := manager.Issue(ctx, 3)
	if err != nil {
		log.Fatalf("Failed to issue challenge: %v", err)
	}

	fmt.Printf("Issued Challenge:\n")
	fmt.Printf("  ID: %s\n", challenge.ID)
	fmt.Printf("  Prefix: %s\n", challenge.Prefix)
	fmt.Printf("  Difficulty: %d\n", challenge.Difficulty)
	fmt.Printf("  Issued At: %s\n", challenge.IssuedAt)

	sol, err := core.Solve(ctx, challenge.Prefix, challenge.Difficulty)
	if err != nil {
		log.Fatalf("Failed to solve challenge: %v", err)
	}
	fmt.Printf("\nSolved with nonce %s (%s)\n\n", sol.Nonce, sol.Hash)

	res, err := manager.Verify(ctx, challenge.ID.String(), sol.Nonce, sol.Hash)
	if err != nil {
		log.Fatalf("Failed to verify solution: %v", err)
	}

	fmt.Printf("Verification:\n")
	fmt.Printf("  Status: %s\n", res.Status)
	fmt.Printf("  Token: %s\n", res.Token.ID)

	status, err := manager.Introspect(ctx, res.Token.ID.String())
	if err != nil {
		log.Fatalf("Failed to check token: %v", err)
	}
	fmt.Printf("  Token Status: %s\n", status)

	_, err = manager.Verify(ctx, challenge.ID.String(), sol.Nonce, sol.Hash)
	if err != nil {
		fmt.Printf("\nAs expected, a challenge cannot be solved twice: %v\n", err)
	}
}
