// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"time"
)

// AppendLog appends fields to a CSV file as one record, creating the file if necessary.
func AppendLog(filename string, fields ...interface{}) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	record := make([]string, len(fields))
	for i, field := range fields {
		switch v := field.(type) {
		case float32, float64:
			record[i] = fmt.Sprintf("%.2f", v)
		case time.Time:
			record[i] = v.UTC().Format(time.RFC3339)
		default:
			record[i] = fmt.Sprint(v)
		}
	}

	w := csv.NewWriter(f)
	if err = w.Write(record); err != nil {
		return err
	}

	w.Flush()
	// Error from flush
	return w.Error()
}

// audit records a publish in the audit log, if there is one.
func (h *Hub) audit(name string, size int, editor *Editor) {
	if h.auditLog == "" {
		return
	}
	if err := AppendLog(h.auditLog, time.Now(), name, size, editor.Published); err != nil {
		log.Println("Error appending audit log:", err)
	}
}
