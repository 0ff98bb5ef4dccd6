// Package submit defines the contract between a form controller and the
// backend collaborator that receives validated values. A Submitter runs once
// per attempt, never retries, and always resolves to exactly one Outcome:
// Success carrying a payload, or Failure classified as InvalidCredentials,
// NetworkError or Unknown. Two collaborators ship here: CredentialSubmitter,
// which adapts an Authenticator black box, and RecordSubmitter, which creates
// records through a Creator and maps server-side field errors back onto the
// form.
package submit
