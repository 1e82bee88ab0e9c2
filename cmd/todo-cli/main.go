// Command todo-cli is a single-user, in-memory todo list driven by a numbered
// console menu. Nothing is persisted: the list lives for the session.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	todo "github.com/example/todo-app/domain/todo"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Strikethrough(true)
)

func main() {
	app := &cli{
		store: todo.NewStore(),
		in:    bufio.NewScanner(os.Stdin),
	}
	app.run()
}

type cli struct {
	store *todo.Store
	in    *bufio.Scanner
}

func (a *cli) run() {
	fmt.Println(headerStyle.Render("Todo List Manager"))

	for {
		fmt.Println()
		fmt.Println("1. Add a task")
		fmt.Println("2. View tasks")
		fmt.Println("3. Update a task")
		fmt.Println("4. Delete a task")
		fmt.Println("5. Toggle completion")
		fmt.Println("6. Exit")

		switch a.prompt("Choose an option: ") {
		case "1":
			a.addTask()
		case "2":
			a.viewTasks()
		case "3":
			a.updateTask()
		case "4":
			a.deleteTask()
		case "5":
			a.toggleTask()
		case "6":
			fmt.Println(infoStyle.Render("Goodbye!"))
			return
		default:
			fmt.Println(errorStyle.Render("Invalid option, choose 1-6"))
		}
	}
}

func (a *cli) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		// Stdin closed; treat as exit.
		os.Exit(0)
	}
	return strings.TrimSpace(a.in.Text())
}

// promptID reads a task ID. Returns 0 when the input is not a positive number.
func (a *cli) promptID() uint {
	raw := a.prompt("Task ID: ")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		fmt.Println(errorStyle.Render("Task ID must be a positive number"))
		return 0
	}
	return uint(id)
}

func (a *cli) addTask() {
	title := a.prompt("Title: ")
	description := a.prompt("Description (optional): ")

	t, err := a.store.Create("", title, description)
	if err != nil {
		a.printErr(err)
		return
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Added task #%d: %s", t.ID, t.Title)))
}

func (a *cli) viewTasks() {
	tasks := a.store.List("")
	if len(tasks) == 0 {
		fmt.Println(infoStyle.Render("No tasks yet"))
		return
	}

	fmt.Println(headerStyle.Render("Your tasks:"))
	for _, t := range tasks {
		line := fmt.Sprintf("  [%d] %s", t.ID, t.Title)
		if t.Description != "" {
			line += " - " + t.Description
		}
		if t.Completed {
			fmt.Println(doneStyle.Render(line + " (done)"))
		} else {
			fmt.Println(line)
		}
	}
}

func (a *cli) updateTask() {
	id := a.promptID()
	if id == 0 {
		return
	}

	fmt.Println(infoStyle.Render("Leave a field blank to keep it"))
	var title, description *string
	if v := a.prompt("New title: "); v != "" {
		title = &v
	}
	if v := a.prompt("New description: "); v != "" {
		description = &v
	}

	t, err := a.store.Update(id, "", title, description)
	if err != nil {
		a.printErr(err)
		return
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Updated task #%d", t.ID)))
}

func (a *cli) deleteTask() {
	id := a.promptID()
	if id == 0 {
		return
	}

	if !a.store.Delete(id, "") {
		fmt.Println(errorStyle.Render(fmt.Sprintf("No task with ID %d", id)))
		return
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Deleted task #%d", id)))
}

func (a *cli) toggleTask() {
	id := a.promptID()
	if id == 0 {
		return
	}

	t, err := a.store.ToggleCompletion(id, "")
	if err != nil {
		a.printErr(err)
		return
	}
	state := "pending"
	if t.Completed {
		state = "done"
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Task #%d is now %s", t.ID, state)))
}

func (a *cli) printErr(err error) {
	var vErr *todo.ValidationError
	switch {
	case errors.As(err, &vErr):
		fmt.Println(errorStyle.Render("Invalid " + vErr.Field + ": " + vErr.Message))
	case errors.Is(err, todo.ErrTodoNotFound):
		fmt.Println(errorStyle.Render("Task not found"))
	default:
		fmt.Println(errorStyle.Render("Error: " + err.Error()))
	}
}
