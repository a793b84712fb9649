/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package utils

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Content validation runs before any network call is made.

func ValidateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < 3 {
		return errors.New("Title must be at least 3 characters")
	}
	if n > 50 {
		return errors.New("Title must be at most 50 characters")
	}
	return nil
}

func ValidateDescription(description string) error {
	n := utf8.RuneCountInString(description)
	if n < 10 {
		return errors.New("Description must be at least 10 characters")
	}
	if n > 200 {
		return errors.New("Description must be at most 200 characters")
	}
	return nil
}

func ValidateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return errors.New("Body cannot be empty")
	}
	return nil
}
