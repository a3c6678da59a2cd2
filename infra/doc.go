// Package infra contains technical adapters: stores, the MQTT notifier,
// metrics sinks, the spreadsheet importer and logging. These packages
// implement interfaces declared under core.
package infra
