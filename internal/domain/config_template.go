package domain

// ConfigTemplate is written by "tasktimer config init".
const ConfigTemplate = `# tasktimer configuration

[store]
# Storage backend: "sqlite" (default) or "json"
# backend = "sqlite"
# Store file path. Defaults to tasks.db or tasks.json in the data directory.
# path = ""

[log]
# Log level: debug, info, warn, error
level = "info"

[user]
# Restrict every task to the user who created it.
# multi_user = false
# Default identity when --user and TASKTIMER_USER are not set.
# name = ""
`
