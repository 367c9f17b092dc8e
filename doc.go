// Copyright 2025 LeadSync. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package ghl-sheets reconciles a GHL (lead management platform) opportunities export with the appointments
recorded in a Google Sheets spreadsheet.

ghl-sheets cleans the phone numbers in the CSV export, uploads the cleaned rows to the 'GHL export' worksheet
and then cross-references the 'Appointment sheet' worksheet against it by phone number, writing a match status
for every appointment to the 'Cross-reference results' worksheet.

ghl-sheets supports the following commands:

  - reconcile, to upload a GHL export and cross-reference it (the default, prompts for missing options)
  - upload, to clean a GHL export CSV file and upload it to the 'GHL export' worksheet
  - cross-reference, to cross-reference the appointments and GHL export worksheets
  - get, to download a Google Sheets worksheet as a CSV file
  - put, to store a CSV file to a Google Sheets worksheet
  - version, to display the current version
*/
package sheets
