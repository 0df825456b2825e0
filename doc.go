// Package taskmanager shows how a program uses the tools of a Model Context
// Protocol (MCP) server, with a small task manager as the example.
//
// The task manager never reads or writes local files. It keeps its task list
// in a JSON document that it loads and stores through a filesystem server's
// read_file and write_file tools. The protocol work is done by the official
// MCP Go SDK; this package adds session lifecycle rules, an error taxonomy,
// the task store and console formatting.
//
// # Sessions
//
// Two Session variants share one contract. NewSubprocessSession launches a
// server command (by default the reference Node filesystem server through
// npx) and talks to it over stdio:
//
//	s := taskmanager.NewSubprocessSession(
//	    taskmanager.WithCommand("npx", "-y", "@modelcontextprotocol/server-filesystem", "/tmp"),
//	    taskmanager.WithLogger(log),
//	)
//
// NewInMemorySession connects to the built-in filesystem tool server in
// process, backed by an in-memory file system:
//
//	s := taskmanager.NewInMemorySession()
//
// # Managing Tasks
//
// Use WithSession to scope a session and TaskManager for read-modify-write
// operations on the task document:
//
//	err := taskmanager.WithSession(ctx, s, func(s taskmanager.Session) error {
//	    m := taskmanager.NewTaskManager(s, taskmanager.WithTasksPath("/tmp/tasks.json"))
//
//	    if _, err := m.Add(ctx, "Learn about MCP", taskmanager.PriorityHigh); err != nil {
//	        return err
//	    }
//
//	    tasks, err := m.Tasks(ctx)
//	    if err != nil {
//	        return err
//	    }
//
//	    taskmanager.FormatTasks(os.Stdout, tasks)
//
//	    return nil
//	})
//
// # Error Handling
//
// Failures are typed. Use errors.As to tell them apart:
//
//	var notFound *taskmanager.TaskNotFoundError
//	if errors.As(err, &notFound) {
//	    fmt.Printf("no task %d\n", notFound.ID)
//	}
//
// ConnectionError covers a failed start, TransportError a channel that broke
// mid-session, RemoteToolError a tool call the server reported as failed, and
// ToolNotFoundError a call rejected by the optional local catalog check.
// A closed session answers every call with ErrSessionClosed.
package taskmanager
