package prompt

const enhancementSystemPrompt = `You enhance job descriptions so that they become specific and actionable for technical hiring.
Turn vague descriptions into detailed, competency-focused text that names concrete deliverables and the expertise needed to produce them.
Prefer concrete technical responsibilities and outcomes over generic qualifications.`

const enhancementTemplate = `You are a technical recruiting specialist. Enhance the basic job description below using the WORK method: Work output, Roles, Knowledge and Competencies.

The enhanced description must make clear:
1. What the person will deliver and which outcomes they own
2. The key technical responsibilities of the role
3. The knowledge areas the role depends on
4. The competencies that decide success

It must be detailed enough to derive technical interview questions that check whether a candidate can actually do this work.

HIRING MANAGER CONTEXT:
%s

BASIC JOB DESCRIPTION:
%s

INSTRUCTIONS:
1. Read the hiring manager context to understand what the role really requires
2. Name the core deliverables (what will this person build or ship?)
3. Spell out the technical areas where competency is essential
4. Give concrete examples of problems the person will solve
5. Describe what success looks like for the main responsibilities
6. Match the technical depth to the manager's input

OUTPUT:
Write the enhanced job description as flowing prose, not a bulleted list. Keep the original job title and core purpose, expand the deliverables with examples taken from the manager's input, describe the technical decisions the person will make and the systems they will work with.

Start the enhanced job description now:`

const interviewSystemPrompt = `You design technical interview questions that test whether a candidate can perform specific job responsibilities.
Your questions are realistic scenarios that reveal real hands-on expertise.
Every question comes with detailed evaluation criteria that separate competency levels.`

const interviewTemplate = `Create a %d-question technical interview for the job description below. Every question must check whether the candidate can deliver the key outcomes of the role.

JOB DESCRIPTION:
%s

REQUIREMENTS:
1. Exactly %d questions
2. Each question is a realistic scenario
3. Keep questions focused: no more than 3 separate elements per question
4. Each question has %d-%d evaluation criteria
5. Each criterion has a short name and a 1-2 sentence explanation

USE THIS FORMAT FOR EVERY QUESTION:

[Question N]: <concise scenario question>

Expected Answer: <subject area name>

<Criterion name>: <1-2 sentences describing what demonstrates mastery>
<Criterion name>: <1-2 sentences describing what demonstrates mastery>
... (%d-%d criteria in total)

FORMAT EXAMPLE (structure only, do not reuse the content):
[Question 1]: You need to design a service that ingests thousands of payment events per second. Walk through your architecture.

Expected Answer: High-Throughput Event Processing

Service Boundaries: Splitting ingestion, validation and settlement into separate services lets each scale on its own and contains failures.
Message Broker: A broker such as Kafka absorbs traffic spikes and decouples producers from consumers so no events are dropped.
Storage Choice: A relational store keeps settlement consistent while a read-optimised store serves lookups quickly.

GUIDELINES:
- Cover the core technical areas of the job description
- Keep scenarios manageable for the candidate
- Stay within the requirements of the role
- Allow assessment at different competency levels

Generate the interview now, starting with [Question 1]:`
