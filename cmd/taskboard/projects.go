// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/taskboard-foundation/taskboard/lib/schema"
)

func runProjects(ctx context.Context, arguments []string) error {
	if len(arguments) < 1 {
		return fmt.Errorf("usage: taskboard projects <list|create|teams> [flags]")
	}
	switch arguments[0] {
	case "list":
		return runProjectsList(ctx, arguments[1:])
	case "create":
		return runProjectsCreate(ctx, arguments[1:])
	case "teams":
		return runProjectsTeams(ctx, arguments[1:])
	default:
		return fmt.Errorf("unknown projects subcommand: %q", arguments[0])
	}
}

func runProjectsList(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("projects list", pflag.ContinueOnError)
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	projects, err := client.MyProjects(ctx)
	if err != nil {
		return err
	}

	fmt.Print(renderProjectTable(projects))
	return nil
}

func runProjectsCreate(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("projects create", pflag.ContinueOnError)
	description := flagSet.String("description", "", "project description")
	startDate := flagSet.String("start", "", "start date (ISO-8601)")
	endDate := flagSet.String("end", "", "end date (ISO-8601)")
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}
	positional := flagSet.Args()
	if len(positional) != 1 {
		return fmt.Errorf("usage: taskboard projects create <name> [flags]")
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	created, err := client.CreateProject(ctx, schema.Project{
		Name:        positional[0],
		Description: *description,
		StartDate:   *startDate,
		EndDate:     *endDate,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created project #%d %q\n", created.ID, created.Name)
	return nil
}

// runProjectsTeams lists project/team links.
func runProjectsTeams(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("projects teams", pflag.ContinueOnError)
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	links, err := client.ProjectTeams(ctx)
	if err != nil {
		return err
	}

	if len(links) == 0 {
		fmt.Println(faintStyle.Render("no project/team links"))
		return nil
	}
	fmt.Println(headerStyle.Render("PROJECT  TEAM  USER"))
	for _, link := range links {
		fmt.Printf("%7d  %4d  %4d\n", link.ProjectID, link.TeamID, link.UserID)
	}
	return nil
}

func runUsers(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("users", pflag.ContinueOnError)
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	users, err := client.Users(ctx)
	if err != nil {
		return err
	}

	fmt.Print(renderUserTable(users))
	return nil
}

func runTeams(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("teams", pflag.ContinueOnError)
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	teams, err := client.Teams(ctx)
	if err != nil {
		return err
	}

	fmt.Print(renderTeamTable(teams))
	return nil
}

func runSearch(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("search", pflag.ContinueOnError)
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}
	positional := flagSet.Args()
	if len(positional) != 1 {
		return fmt.Errorf("usage: taskboard search <query>")
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	results, err := client.Search(ctx, positional[0])
	if err != nil {
		return err
	}

	if len(results.Tasks) > 0 {
		fmt.Println(headerStyle.Render("Tasks"))
		fmt.Print(renderTaskTable(results.Tasks))
	}
	if len(results.Projects) > 0 {
		fmt.Println(headerStyle.Render("Projects"))
		fmt.Print(renderProjectTable(results.Projects))
	}
	if len(results.Users) > 0 {
		fmt.Println(headerStyle.Render("Users"))
		fmt.Print(renderUserTable(results.Users))
	}
	if len(results.Tasks)+len(results.Projects)+len(results.Users) == 0 {
		fmt.Println(faintStyle.Render("no results"))
	}
	return nil
}
