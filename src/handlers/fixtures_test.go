package handlers

import "time"

var fixedTime = time.Date(2024, 1, 6, 9, 30, 0, 0, time.UTC)
